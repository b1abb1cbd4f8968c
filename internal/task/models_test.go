package task

import (
	"testing"
)

func TestFromDrafts_AssignsOrderedIDs(t *testing.T) {
	drafts := []Draft{
		{Title: "Buy a Pi", Description: "Pick a Raspberry Pi 4", Category: CategoryResearch, EstimatedTime: "1 hour"},
		{Title: "Mount the mirror", Description: "Two-way acrylic", Category: CategoryDesign},
		{Title: "Write the dashboard", Description: "Calendar and weather", Category: CategoryDevelopment},
	}

	tasks := FromDrafts(drafts)
	if len(tasks) != 3 {
		t.Fatalf("len(tasks) = %d, want 3", len(tasks))
	}

	seen := map[string]bool{}
	for i, tk := range tasks {
		if tk.ID != IDForIndex(i) {
			t.Errorf("tasks[%d].ID = %q, want %q", i, tk.ID, IDForIndex(i))
		}
		if seen[tk.ID] {
			t.Errorf("duplicate id %q", tk.ID)
		}
		seen[tk.ID] = true
		if tk.IsCompleted {
			t.Errorf("tasks[%d] should start incomplete", i)
		}
		if tk.Title != drafts[i].Title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, tk.Title, drafts[i].Title)
		}
	}
	if tasks[0].EstimatedTime != "1 hour" {
		t.Errorf("EstimatedTime = %q, want %q", tasks[0].EstimatedTime, "1 hour")
	}
}

func TestFromDrafts_Empty(t *testing.T) {
	tasks := FromDrafts(nil)
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("FromDrafts(nil) = %#v, want empty non-nil slice", tasks)
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []Category{"", "research", "Engineering"} {
		if c.IsValid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid", Task{ID: "task-0", Title: "Do it", Category: CategoryOther}, false},
		{"missing id", Task{Title: "Do it", Category: CategoryOther}, true},
		{"blank title", Task{ID: "task-0", Title: "  ", Category: CategoryOther}, true},
		{"bad category", Task{ID: "task-0", Title: "Do it", Category: "Ops"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
