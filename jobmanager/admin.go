package jobmanager

import (
	"fmt"

	"job_manager_fields/hook"
	"job_manager_fields/model"
	"job_manager_fields/utils"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// MetaStore 后台编辑页读写元数据所需的接口，由 service.MetaService 实现
type MetaStore interface {
	UpdatePostMeta(postID int64, metaKey, metaValue string) error
	GetAllPostMeta(postID int64) (map[string]string, error)
}

// DefaultAdminFields 后台编辑页的默认字段，键为元数据键
func DefaultAdminFields() model.AdminFields {
	return model.AdminFields{
		"_job_location":    {Label: "Location", Type: model.FieldTypeText, Placeholder: "e.g. \"London\"", Description: "Leave this blank if the location is not important"},
		"_application":     {Label: "Application email/URL", Type: model.FieldTypeText, Placeholder: "URL or email which applicants use to apply"},
		"_company_name":    {Label: "Company name", Type: model.FieldTypeText},
		"_company_website": {Label: "Company website", Type: model.FieldTypeText},
		"_company_tagline": {Label: "Company tagline", Type: model.FieldTypeText, Placeholder: "Brief description about the company"},
		"_company_twitter": {Label: "Company Twitter", Type: model.FieldTypeText, Placeholder: "@yourcompany"},
		"_company_video":   {Label: "Company video", Type: model.FieldTypeText, Placeholder: "URL to the company video"},
		"_company_logo":    {Label: "Company logo", Type: model.FieldTypeFile, Placeholder: "URL to the company logo"},
		"_filled":          {Label: "Position filled?", Type: model.FieldTypeCheckbox, Description: "Filled listings will no longer accept applications."},
		"_featured":        {Label: "Feature this job listing?", Type: model.FieldTypeCheckbox, Description: "Featured listings will be sticky during searches, and can be styled differently."},
	}
}

// Admin 后台职位编辑页
type Admin struct {
	hooks *hook.Registry
	meta  MetaStore
}

// NewAdmin 创建后台编辑页
func NewAdmin(hooks *hook.Registry, meta MetaStore) *Admin {
	return &Admin{hooks: hooks, meta: meta}
}

// Fields 默认字段经过 job_manager_job_listing_data_fields 过滤后的结果
func (a *Admin) Fields() model.AdminFields {
	return a.hooks.JobListingDataFields.Apply(DefaultAdminFields())
}

// Values 读取后台字段当前保存的值，未保存的字段不出现在结果中
func (a *Admin) Values(jobID int64) (map[string]string, error) {
	all, err := a.meta.GetAllPostMeta(jobID)
	if err != nil {
		return nil, fmt.Errorf("读取职位 %d 的元数据失败: %w", jobID, err)
	}

	values := make(map[string]string)
	for key := range a.Fields() {
		if v, ok := all[key]; ok {
			values[key] = v
		}
	}
	return values, nil
}

// Save 按元数据键保存后台提交的全部字段。
// 未提交的字段保持原值；复选框未提交视为取消勾选。
func (a *Admin) Save(jobID int64, posted map[string]string) error {
	var errs error
	for key, field := range a.Fields() {
		value, ok := posted[key]
		switch field.Type {
		case model.FieldTypeCheckbox:
			if ok && value != "" {
				value = "1"
			} else {
				value = "0"
			}
		default:
			if !ok {
				continue
			}
			value = utils.SanitizeTextField(value)
		}

		if err := a.meta.UpdatePostMeta(jobID, key, value); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("保存 %s 失败: %w", key, err))
		}
	}

	if errs != nil {
		log.Errorf("职位 %d 后台保存失败: %v", jobID, errs)
	}
	return errs
}
