// Package plugin 为职位提交表单增加 "Office Morale" 字段：
// 在前台提交表单中显示、提交时保存为职位的元数据、并在后台编辑页中可编辑。
package plugin

import (
	"fmt"
	"strings"
	"sync"

	"job_manager_fields/hook"
	"job_manager_fields/model"
	"job_manager_fields/utils"

	log "github.com/sirupsen/logrus"
)

// 字段常量
const (
	FieldKey         = "company_office_morale"
	MetaKey          = "_company_office_morale" // 下划线开头，不在通用自定义字段面板中显示
	FormLabel        = "Office Morale"
	AdminLabel       = "Company Morale"
	Placeholder      = "Happy, etc"
	FormPriority     = 3
	CallbackPriority = hook.DefaultPriority
)

// MetaStore 元数据写入接口，由 service.MetaService 实现
type MetaStore interface {
	UpdatePostMeta(postID int64, metaKey, metaValue string) error
}

// JobManagerFields 字段扩展，进程内只有一个实例
type JobManagerFields struct {
	env  Environment
	meta MetaStore
}

var (
	instance *JobManagerFields
	once     sync.Once
)

// Instance 返回唯一实例。首次调用时解析路径并注册回调，之后的调用忽略参数直接返回已有实例。
func Instance(env Environment, hooks *hook.Registry, meta MetaStore) *JobManagerFields {
	once.Do(func() {
		instance = New(env, meta)
		instance.SetupActions(hooks)
		log.Infof("✓ 自定义字段扩展已加载: %s", instance.env.Basename)
	})
	return instance
}

// Register 把 Instance 注册为 init 动作的回调
func Register(hooks *hook.Registry, env Environment, meta MetaStore) {
	hooks.Init.Add(func(struct{}) error {
		Instance(env, hooks, meta)
		return nil
	}, CallbackPriority)
}

// New 创建实例但不注册任何回调
func New(env Environment, meta MetaStore) *JobManagerFields {
	return &JobManagerFields{
		env:  env,
		meta: meta,
	}
}

// Env 插件路径信息
func (p *JobManagerFields) Env() Environment { return p.env }

// SetupActions 注册过滤器和动作：
// 前台表单字段与保存；后台字段（后台保存由宿主按元数据键自动完成）
func (p *JobManagerFields) SetupActions(hooks *hook.Registry) {
	if hooks == nil {
		log.Warn("扩展点为空，跳过注册")
		return
	}
	hooks.SubmitJobFormFields.Add(p.FormFields, CallbackPriority)
	hooks.UpdateJobData.Add(p.onUpdateJobData, CallbackPriority)
	hooks.JobListingDataFields.Add(p.JobListingDataFields, CallbackPriority)
}

// FormFields 向提交表单的 company 分组加入字段。
// 只能放在 job 或 company 两个分组中；返回新的集合，不修改入参。
func (p *JobManagerFields) FormFields(fields model.FormFields) model.FormFields {
	out := fields.Clone()
	if out[model.GroupCompany] == nil {
		out[model.GroupCompany] = map[string]model.FieldDescriptor{}
	}
	out[model.GroupCompany][FieldKey] = model.FieldDescriptor{
		Label:       FormLabel,
		Type:        model.FieldTypeText,
		Placeholder: Placeholder,
		Required:    true,
		Priority:    FormPriority,
	}
	return out
}

func (p *JobManagerFields) onUpdateJobData(update model.JobDataUpdate) error {
	return p.UpdateJobData(update.JobID, update.Values)
}

// UpdateJobData 表单提交时保存字段值。
// 值缺失、为空或清理后为空时不做任何处理，已有的元数据保持不变。
func (p *JobManagerFields) UpdateJobData(jobID int64, values model.SubmissionValues) error {
	raw, ok := values.Lookup(model.GroupCompany, FieldKey)
	if !ok || strings.TrimSpace(raw) == "" {
		log.Debugf("职位 %d 未提交 %s，跳过", jobID, FieldKey)
		return nil
	}

	morale := utils.SanitizeTextField(raw)
	if morale == "" {
		log.Debugf("职位 %d 的 %s 清理后为空，跳过", jobID, FieldKey)
		return nil
	}

	if p.meta == nil {
		return fmt.Errorf("保存 %s 失败: 未配置元数据存储", MetaKey)
	}
	if err := p.meta.UpdatePostMeta(jobID, MetaKey, morale); err != nil {
		return fmt.Errorf("保存 %s 失败: %w", MetaKey, err)
	}
	log.Debugf("职位 %d 的 %s 已保存", jobID, MetaKey)
	return nil
}

// JobListingDataFields 向后台编辑页加入字段，以元数据键作为字段名，不区分分组
func (p *JobManagerFields) JobListingDataFields(fields model.AdminFields) model.AdminFields {
	out := fields.Clone()
	out[MetaKey] = model.FieldDescriptor{
		Label:       AdminLabel,
		Placeholder: Placeholder,
		Type:        model.FieldTypeText,
	}
	return out
}
