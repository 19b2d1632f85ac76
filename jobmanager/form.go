// Package jobmanager 是宿主侧的职位表单流程：提供默认字段、应用扩展点、
// 校验必填项并在保存时触发 job_manager_update_job_data 动作。
package jobmanager

import (
	"fmt"
	"sort"
	"strings"

	"job_manager_fields/hook"
	"job_manager_fields/model"

	log "github.com/sirupsen/logrus"
)

// Field 带键的字段描述，用于排序后的输出
type Field struct {
	Key string
	model.FieldDescriptor
}

// RequiredFieldError 必填字段缺失
type RequiredFieldError struct {
	Group string
	Key   string
	Label string
}

func (e *RequiredFieldError) Error() string {
	return "缺少必填字段: " + e.Label + " (" + e.Group + "." + e.Key + ")"
}

// DefaultFormFields 提交表单的默认字段
func DefaultFormFields() model.FormFields {
	return model.FormFields{
		model.GroupJob: {
			"job_title":       {Label: "Job Title", Type: model.FieldTypeText, Required: true, Priority: 1},
			"job_location":    {Label: "Location", Type: model.FieldTypeText, Placeholder: "e.g. \"London\"", Description: "Leave this blank if the location is not important", Priority: 2},
			"job_type":        {Label: "Job type", Type: model.FieldTypeSelect, Required: true, Priority: 3, Options: map[string]string{"full-time": "Full Time", "part-time": "Part Time", "freelance": "Freelance", "internship": "Internship"}},
			"job_description": {Label: "Description", Type: model.FieldTypeJobDescription, Required: true, Priority: 4},
			"application":     {Label: "Application email/URL", Type: model.FieldTypeText, Placeholder: "Enter an email address or website URL", Required: true, Priority: 5},
		},
		model.GroupCompany: {
			"company_name":    {Label: "Company name", Type: model.FieldTypeText, Placeholder: "Enter the name of the company", Required: true, Priority: 1},
			"company_website": {Label: "Website", Type: model.FieldTypeText, Placeholder: "http://", Priority: 2},
			"company_tagline": {Label: "Tagline", Type: model.FieldTypeText, Placeholder: "Briefly describe your company", Priority: 3},
			"company_video":   {Label: "Video", Type: model.FieldTypeText, Placeholder: "A link to a video about your company", Priority: 4},
			"company_twitter": {Label: "Twitter username", Type: model.FieldTypeText, Placeholder: "@yourcompany", Priority: 5},
			"company_logo":    {Label: "Logo", Type: model.FieldTypeFile, Priority: 6},
		},
	}
}

// JobStore 职位记录查询接口，由 repository.JobListingRepository 实现
type JobStore interface {
	FindByID(id int64) (*model.JobListingEntity, error)
}

// Form 职位提交表单
type Form struct {
	hooks *hook.Registry
	jobs  JobStore
}

// NewForm 创建提交表单，jobs 为 nil 时不检查职位记录是否存在
func NewForm(hooks *hook.Registry, jobs JobStore) *Form {
	return &Form{hooks: hooks, jobs: jobs}
}

// Fields 默认字段经过 submit_job_form_fields 过滤后的结果
func (f *Form) Fields() model.FormFields {
	fields := f.hooks.SubmitJobFormFields.Apply(DefaultFormFields())
	for group, groupFields := range fields {
		for key, d := range groupFields {
			if !d.Type.Valid() {
				// 自定义类型需要扩展自行提供模板
				log.Warnf("字段 %s.%s 使用了未知类型 %q", group, key, d.Type)
			}
		}
	}
	return fields
}

// SortedFields 按优先级升序排列一个分组的字段。
// 优先级相同的字段按键名排序，保证输出稳定。
func SortedFields(fields map[string]model.FieldDescriptor) []Field {
	out := make([]Field, 0, len(fields))
	for key, d := range fields {
		out = append(out, Field{Key: key, FieldDescriptor: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Validate 检查必填字段，返回第一个缺失的字段
func (f *Form) Validate(values model.SubmissionValues) error {
	fields := f.Fields()
	for _, group := range []string{model.GroupJob, model.GroupCompany} {
		for _, field := range SortedFields(fields[group]) {
			if !field.Required {
				continue
			}
			if v, ok := values.Lookup(group, field.Key); !ok || isBlank(v) {
				return &RequiredFieldError{Group: group, Key: field.Key, Label: field.Label}
			}
		}
	}
	return nil
}

// Submit 校验提交值并触发 job_manager_update_job_data。
// 只有校验错误和职位不存在会返回；扩展回调的错误记录日志后忽略，不影响本次保存。
func (f *Form) Submit(jobID int64, values model.SubmissionValues) error {
	if err := f.Validate(values); err != nil {
		return err
	}

	if f.jobs != nil {
		job, err := f.jobs.FindByID(jobID)
		if err != nil {
			return fmt.Errorf("查询职位 %d 失败: %w", jobID, err)
		}
		if job == nil {
			return fmt.Errorf("职位 %d 不存在", jobID)
		}
	}

	if err := f.hooks.UpdateJobData.Do(model.JobDataUpdate{JobID: jobID, Values: values}); err != nil {
		log.Warnf("职位 %d 保存时部分扩展回调失败: %v", jobID, err)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
