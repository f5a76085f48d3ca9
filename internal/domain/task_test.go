package domain

import "testing"

func ptr(v int64) *int64 { return &v }

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name  string
		task  Task
		actor *int64
		want  bool
	}{
		{"owner sees own", Task{OwnerID: ptr(1)}, ptr(1), true},
		{"stranger blocked", Task{OwnerID: ptr(1)}, ptr(2), false},
		{"shared visible to stranger", Task{OwnerID: ptr(1), IsShared: true}, ptr(2), true},
		{"ownerless visible to anyone", Task{}, ptr(2), true},
		{"nil actor sees everything", Task{OwnerID: ptr(1)}, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.VisibleTo(tc.actor); got != tc.want {
				t.Errorf("VisibleTo = %v, want %v", got, tc.want)
			}
			// edit rights track visibility exactly
			if got := tc.task.EditableBy(tc.actor); got != tc.want {
				t.Errorf("EditableBy = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSharableBy(t *testing.T) {
	tests := []struct {
		name  string
		task  Task
		actor *int64
		want  bool
	}{
		{"owner may toggle", Task{OwnerID: ptr(1)}, ptr(1), true},
		{"collaborator may not", Task{OwnerID: ptr(1), IsShared: true}, ptr(2), false},
		{"ownerless has no sharer", Task{}, ptr(1), false},
		{"nil actor may not", Task{OwnerID: ptr(1)}, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.SharableBy(tc.actor); got != tc.want {
				t.Errorf("SharableBy = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"low", PriorityLow},
		{"medium", PriorityMedium},
		{"high", PriorityHigh},
		{"", PriorityMedium},
		{"urgent", PriorityMedium},
		{"HIGH", PriorityMedium},
	}
	for _, tc := range tests {
		if got := NormalizePriority(tc.in); got != tc.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusComplete.Valid() || !StatusIncomplete.Valid() {
		t.Error("canonical statuses must validate")
	}
	if Status("done").Valid() {
		t.Error("unknown status must not validate")
	}
}
