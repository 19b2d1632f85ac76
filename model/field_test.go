package model

import "testing"

func TestFieldType_Valid(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeText, FieldTypeFile, FieldTypeJobDescription, FieldTypeSelect, FieldTypeTextarea, FieldTypeCheckbox} {
		if !ft.Valid() {
			t.Errorf("%q should be valid", ft)
		}
	}
	if FieldType("term-multiselect").Valid() {
		t.Error("unknown type reported as valid")
	}
}

func TestSubmissionValues_Lookup(t *testing.T) {
	var empty SubmissionValues
	if _, ok := empty.Lookup(GroupCompany, "x"); ok {
		t.Error("Lookup on nil values should miss")
	}

	v := SubmissionValues{GroupCompany: {"company_office_morale": "Happy"}, GroupJob: nil}
	if got, ok := v.Lookup(GroupCompany, "company_office_morale"); !ok || got != "Happy" {
		t.Errorf("Lookup() = %q, %v", got, ok)
	}
	if _, ok := v.Lookup(GroupJob, "job_title"); ok {
		t.Error("Lookup on nil group should miss")
	}
}

func TestFormFields_CloneIsIndependent(t *testing.T) {
	orig := FormFields{GroupCompany: {"company_name": {Label: "Company name"}}}
	c := orig.Clone()
	c[GroupCompany]["company_logo"] = FieldDescriptor{Label: "Logo"}
	if _, ok := orig[GroupCompany]["company_logo"]; ok {
		t.Error("Clone() shares inner maps with its source")
	}
}
