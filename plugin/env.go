package plugin

import (
	"fmt"
	"path/filepath"

	"job_manager_fields/config"
	"job_manager_fields/utils"
)

// Environment 插件文件与资源的位置，构造后只读
type Environment struct {
	File         string // 插件主文件的绝对路径
	Basename     string // 相对插件根目录的路径
	PluginDir    string // 插件目录，带结尾分隔符
	PluginURL    string // 插件目录URL，带结尾"/"
	TemplatesDir string // 模板目录
	AssetsURL    string // 静态资源URL
}

// ResolveEnvironment 根据配置计算插件路径。未配置主文件时使用项目根目录下的 main.go。
func ResolveEnvironment(cfg config.PluginConfig) (Environment, error) {
	file := cfg.File
	if file == "" {
		root, err := utils.GetProjectRoot()
		if err != nil {
			return Environment{}, fmt.Errorf("获取项目根目录失败: %w", err)
		}
		file = filepath.Join(root, "main.go")
	}

	file, err := filepath.Abs(file)
	if err != nil {
		return Environment{}, fmt.Errorf("解析插件路径失败: %w", err)
	}

	pluginsRoot := cfg.PluginsRoot
	if pluginsRoot == "" {
		// 默认插件目录的上一级为插件根目录
		pluginsRoot = filepath.Dir(filepath.Dir(file))
	}

	pluginURL, err := utils.PluginDirURL(cfg.BaseURL, file, pluginsRoot)
	if err != nil {
		return Environment{}, err
	}

	dir := utils.PluginDirPath(file)
	return Environment{
		File:         file,
		Basename:     utils.PluginBasename(file, pluginsRoot),
		PluginDir:    dir,
		PluginURL:    pluginURL,
		TemplatesDir: utils.TrailingSeparator(filepath.Join(dir, "templates")),
		AssetsURL:    pluginURL + "assets/",
	}, nil
}
