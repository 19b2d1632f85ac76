package model

// FieldType 字段类型
type FieldType string

const (
	FieldTypeText           FieldType = "text"
	FieldTypeFile           FieldType = "file"
	FieldTypeJobDescription FieldType = "job-description" // 富文本
	FieldTypeSelect         FieldType = "select"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeCheckbox       FieldType = "checkbox"
)

// Valid 判断是否为已知的字段类型
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeFile, FieldTypeJobDescription,
		FieldTypeSelect, FieldTypeTextarea, FieldTypeCheckbox:
		return true
	}
	return false
}

// 提交表单的字段分组
const (
	GroupJob     = "job"
	GroupCompany = "company"
)

// FieldDescriptor 表单字段描述
type FieldDescriptor struct {
	Label       string            `json:"label" yaml:"label"`                                 // 字段标签
	Type        FieldType         `json:"type" yaml:"type"`                                   // 字段类型
	Placeholder string            `json:"placeholder" yaml:"placeholder"`                     // 占位文本
	Description string            `json:"description,omitempty" yaml:"description,omitempty"` // 字段说明
	Required    bool              `json:"required" yaml:"required"`                           // 是否必填
	Priority    int               `json:"priority" yaml:"priority"`                           // 排序，越小越靠前
	Options     map[string]string `json:"options,omitempty" yaml:"options,omitempty"`         // 仅 select 使用
}

// FormFields 提交表单字段：分组 -> 字段键 -> 描述
type FormFields map[string]map[string]FieldDescriptor

// Clone 浅拷贝两层map，描述本身按值复制
func (f FormFields) Clone() FormFields {
	out := make(FormFields, len(f))
	for group, fields := range f {
		inner := make(map[string]FieldDescriptor, len(fields))
		for key, d := range fields {
			inner[key] = d
		}
		out[group] = inner
	}
	return out
}

// AdminFields 后台编辑页字段：元数据键 -> 描述
type AdminFields map[string]FieldDescriptor

// Clone 复制一份
func (f AdminFields) Clone() AdminFields {
	out := make(AdminFields, len(f))
	for key, d := range f {
		out[key] = d
	}
	return out
}

// SubmissionValues 表单提交值：分组 -> 字段键 -> 值
type SubmissionValues map[string]map[string]string

// Lookup 读取某个分组下的值，分组或键缺失时返回 false
func (v SubmissionValues) Lookup(group, key string) (string, bool) {
	if v == nil {
		return "", false
	}
	fields, ok := v[group]
	if !ok || fields == nil {
		return "", false
	}
	value, ok := fields[key]
	return value, ok
}

// JobDataUpdate job_manager_update_job_data 动作的参数
type JobDataUpdate struct {
	JobID  int64
	Values SubmissionValues
}
