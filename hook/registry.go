package hook

import (
	"job_manager_fields/model"
)

// 扩展点名称
const (
	Init                 = "init"
	SubmitJobFormFields  = "submit_job_form_fields"
	UpdateJobData        = "job_manager_update_job_data"
	JobListingDataFields = "job_manager_job_listing_data_fields"
)

// Registry 宿主平台暴露给扩展的全部扩展点
type Registry struct {
	Init                 *Action[struct{}]
	SubmitJobFormFields  *Filter[model.FormFields]
	UpdateJobData        *Action[model.JobDataUpdate]
	JobListingDataFields *Filter[model.AdminFields]
}

// NewRegistry 创建空的扩展点集合
func NewRegistry() *Registry {
	return &Registry{
		Init:                 NewAction[struct{}](Init),
		SubmitJobFormFields:  NewFilter[model.FormFields](SubmitJobFormFields),
		UpdateJobData:        NewAction[model.JobDataUpdate](UpdateJobData),
		JobListingDataFields: NewFilter[model.AdminFields](JobListingDataFields),
	}
}

// DoInit 触发 init 动作
func (r *Registry) DoInit() error {
	return r.Init.Do(struct{}{})
}

// Counts 各扩展点已注册的回调数量，用于启动日志
func (r *Registry) Counts() map[string]int {
	return map[string]int{
		Init:                 r.Init.Len(),
		SubmitJobFormFields:  r.SubmitJobFormFields.Len(),
		UpdateJobData:        r.UpdateJobData.Len(),
		JobListingDataFields: r.JobListingDataFields.Len(),
	}
}
