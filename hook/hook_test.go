package hook_test

import (
	"errors"
	"reflect"
	"testing"

	"job_manager_fields/hook"
	"job_manager_fields/model"
)

func TestFilter_AppliesInPriorityOrder(t *testing.T) {
	f := hook.NewFilter[[]string]("names")
	appendName := func(name string) hook.FilterFunc[[]string] {
		return func(in []string) []string { return append(in, name) }
	}
	f.Add(appendName("late"), 20)
	f.Add(appendName("first-10"), 10)
	f.Add(appendName("early"), 1)
	f.Add(appendName("second-10"), 10)

	got := f.Apply(nil)
	want := []string{"early", "first-10", "second-10", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_NoCallbacksReturnsInput(t *testing.T) {
	f := hook.NewFilter[int]("noop")
	if got := f.Apply(7); got != 7 {
		t.Errorf("Apply(7) = %d, want 7", got)
	}
	f.Add(nil, hook.DefaultPriority)
	if f.Len() != 0 {
		t.Errorf("nil callback should not be registered, Len() = %d", f.Len())
	}
}

func TestAction_ContinuesAfterFailure(t *testing.T) {
	a := hook.NewAction[int]("save")
	var calls []string
	a.Add(func(int) error {
		calls = append(calls, "fails")
		return errors.New("boom")
	}, 5)
	a.Add(func(int) error {
		calls = append(calls, "panics")
		panic("bad callback")
	}, 6)
	a.Add(func(int) error {
		calls = append(calls, "ok")
		return nil
	}, 7)

	err := a.Do(1)
	if err == nil {
		t.Fatal("Do() expected combined error, got nil")
	}
	want := []string{"fails", "panics", "ok"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestAction_NoErrors(t *testing.T) {
	a := hook.NewAction[string]("ping")
	var got string
	a.Add(func(s string) error { got = s; return nil }, hook.DefaultPriority)
	if err := a.Do("pong"); err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}
	if got != "pong" {
		t.Errorf("callback received %q, want %q", got, "pong")
	}
}

func TestRegistry_NamesAndCounts(t *testing.T) {
	r := hook.NewRegistry()
	if r.SubmitJobFormFields.Name() != "submit_job_form_fields" {
		t.Errorf("SubmitJobFormFields.Name() = %q", r.SubmitJobFormFields.Name())
	}
	if r.UpdateJobData.Name() != "job_manager_update_job_data" {
		t.Errorf("UpdateJobData.Name() = %q", r.UpdateJobData.Name())
	}
	if r.JobListingDataFields.Name() != "job_manager_job_listing_data_fields" {
		t.Errorf("JobListingDataFields.Name() = %q", r.JobListingDataFields.Name())
	}

	r.UpdateJobData.Add(func(model.JobDataUpdate) error { return nil }, hook.DefaultPriority)
	counts := r.Counts()
	if counts[hook.UpdateJobData] != 1 || counts[hook.SubmitJobFormFields] != 0 {
		t.Errorf("Counts() = %v", counts)
	}

	ran := false
	r.Init.Add(func(struct{}) error { ran = true; return nil }, hook.DefaultPriority)
	if err := r.DoInit(); err != nil {
		t.Fatalf("DoInit() unexpected error: %v", err)
	}
	if !ran {
		t.Error("init callback did not run")
	}
}
