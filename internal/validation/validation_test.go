package validation_test

import (
	"testing"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/task"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "simple", raw: "1", want: 1},
		{name: "larger", raw: "42", want: 42},
		{name: "zero_rejected", raw: "0", wantErr: true},
		{name: "negative_rejected", raw: "-1", wantErr: true},
		{name: "trailing_garbage", raw: "12a", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace", raw: " 1", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ParseID(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseID(%q) = %d, want error", tt.raw, got)
				}
				if !apperror.Is(err, apperror.KindInvalidID) {
					t.Fatalf("ParseID(%q) error kind = %v, want %v", tt.raw, apperror.KindOf(err), apperror.KindInvalidID)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseID(%q) unexpected error: %v", tt.raw, err)
			}

			if got != tt.want {
				t.Fatalf("ParseID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "valid", raw: "a@x.com", want: "a@x.com"},
		{name: "trimmed", raw: "  a@x.com  ", want: "a@x.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace_only", raw: "   ", wantErr: true},
		{name: "no_at", raw: "ax.com", wantErr: true},
		{name: "no_domain", raw: "a@", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ParseEmail(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEmail(%q) = %q, want error", tt.raw, got)
				}
				if !apperror.Is(err, apperror.KindInvalidEmail) {
					t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindInvalidEmail)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseEmail(%q) unexpected error: %v", tt.raw, err)
			}

			if got != tt.want {
				t.Fatalf("ParseEmail(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestUserCreate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		userName string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "a@x.com", userName: "Alice", password: "Abcdef12"},
		{name: "bad_email", email: "nope", userName: "Alice", password: "Abcdef12", wantErr: true},
		{name: "short_name", email: "a@x.com", userName: "Al", password: "Abcdef12", wantErr: true},
		{name: "short_password", email: "a@x.com", userName: "Alice", password: "Ab1", wantErr: true},
		{name: "no_uppercase", email: "a@x.com", userName: "Alice", password: "abcdef12", wantErr: true},
		{name: "no_lowercase", email: "a@x.com", userName: "Alice", password: "ABCDEF12", wantErr: true},
		{name: "no_digit", email: "a@x.com", userName: "Alice", password: "Abcdefgh", wantErr: true},
		{name: "too_long_password", email: "a@x.com", userName: "Alice", password: "Abcdef12Abcdef12Abcdef12Abcdef1", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.UserCreate(tt.email, tt.userName, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("UserCreate(%q, %q, %q) succeeded, want error", tt.email, tt.userName, tt.password)
				}
				if !apperror.Is(err, apperror.KindValidation) {
					t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindValidation)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Email != tt.email || got.Name != tt.userName {
				t.Fatalf("normalized input mismatch: %+v", got)
			}
		})
	}
}

func TestUserUpdateEmptyPatch(t *testing.T) {
	_, err := validation.UserUpdate(user.Patch{})

	if !apperror.Is(err, apperror.KindEmptyUpdate) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindEmptyUpdate)
	}
}

func TestUserUpdateRehashableFieldsOnly(t *testing.T) {
	patch, err := validation.UserUpdate(user.Patch{Name: strPtr("  Alice Cooper ")})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if patch.Name == nil || *patch.Name != "Alice Cooper" {
		t.Fatalf("name not trimmed: %+v", patch.Name)
	}

	if patch.Email != nil || patch.Password != nil {
		t.Fatalf("untouched fields should stay nil: %+v", patch)
	}
}

func TestTaskCreate(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		desc     string
		status   *string
		dueDate  *string
		wantErr  apperror.Kind
	}{
		{name: "valid_defaults", taskName: "Write report", desc: "Q3 summary"},
		{name: "explicit_status", taskName: "Write report", desc: "", status: strPtr("COMPLETED")},
		{name: "with_due_date", taskName: "Write report", desc: "", dueDate: strPtr("2026-09-01T12:00:00Z")},
		{name: "name_too_short", taskName: "Four", desc: "", wantErr: apperror.KindValidation},
		{name: "name_untrimmed_short", taskName: "  Hi  ", desc: "", wantErr: apperror.KindValidation},
		{name: "bad_status", taskName: "Write report", desc: "", status: strPtr("DONE"), wantErr: apperror.KindValidation},
		{name: "bad_due_date", taskName: "Write report", desc: "", dueDate: strPtr("tomorrow"), wantErr: apperror.KindValidation},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.TaskCreate(tt.taskName, tt.desc, tt.status, tt.dueDate)

			if tt.wantErr != "" {
				if !apperror.Is(err, tt.wantErr) {
					t.Fatalf("error kind = %v, want %v (err=%v)", apperror.KindOf(err), tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.status == nil && got.Status != task.StatusPending {
				t.Fatalf("default status = %v, want %v", got.Status, task.StatusPending)
			}

			if tt.dueDate != nil && got.DueDate == nil {
				t.Fatal("due date was dropped")
			}
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	t.Run("empty_patch", func(t *testing.T) {
		_, err := validation.TaskUpdate(nil, nil, nil, nil)

		if !apperror.Is(err, apperror.KindEmptyUpdate) {
			t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindEmptyUpdate)
		}
	})

	t.Run("short_name_allowed_on_update", func(t *testing.T) {
		patch, err := validation.TaskUpdate(strPtr("Hi"), nil, nil, nil)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if patch.Name == nil || *patch.Name != "Hi" {
			t.Fatalf("patch name = %+v", patch.Name)
		}
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		_, err := validation.TaskUpdate(strPtr("   "), nil, nil, nil)

		if !apperror.Is(err, apperror.KindValidation) {
			t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindValidation)
		}
	})

	t.Run("bad_status_rejected", func(t *testing.T) {
		_, err := validation.TaskUpdate(nil, nil, strPtr("WONTFIX"), nil)

		if !apperror.Is(err, apperror.KindValidation) {
			t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindValidation)
		}
	})
}
