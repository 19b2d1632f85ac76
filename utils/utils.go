package utils

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetProjectRoot 通过向上查找go.mod来获取项目根目录，找不到时退回到本文件的上一级目录
func GetProjectRoot() (string, error) {
	if dir, err := findUp("", "go.mod"); err == nil {
		return dir, nil
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("无法获取当前文件路径")
	}

	// 当前文件在utils/目录下，向上回退1级
	projectRoot, err := filepath.Abs(filepath.Join(filepath.Dir(filename), ".."))
	if err != nil {
		return "", err
	}
	if fileExists(filepath.Join(projectRoot, "main.go")) {
		return projectRoot, nil
	}
	return findUp(filepath.Dir(filename), "main.go")
}

// findUp 从startDir开始逐级向上查找包含marker的目录，startDir为空时从工作目录开始
func findUp(startDir, marker string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(currentDir, marker)) {
			return currentDir, nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("未找到%s", marker)
}

// PluginBasename 返回插件文件相对插件根目录的路径，统一使用"/"分隔
// 文件不在根目录下时返回文件名本身
func PluginBasename(file, pluginsRoot string) string {
	file = filepath.Clean(file)
	if pluginsRoot != "" {
		rel, err := filepath.Rel(filepath.Clean(pluginsRoot), file)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(file)
}

// PluginDirPath 插件文件所在目录，带结尾分隔符
func PluginDirPath(file string) string {
	return TrailingSeparator(filepath.Dir(filepath.Clean(file)))
}

// PluginDirURL 插件目录对应的URL，带结尾"/"
func PluginDirURL(baseURL, file, pluginsRoot string) (string, error) {
	rel := PluginBasename(file, pluginsRoot)
	dir := ""
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		dir = rel[:i]
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("插件URL解析失败: %w", err)
	}
	if dir != "" {
		u = u.JoinPath(strings.Split(dir, "/")...)
	}
	return strings.TrimRight(u.String(), "/") + "/", nil
}

// TrailingSeparator 确保路径以分隔符结尾
func TrailingSeparator(path string) string {
	return strings.TrimRight(path, string(filepath.Separator)) + string(filepath.Separator)
}

// fileExists 检查文件或目录是否存在
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
