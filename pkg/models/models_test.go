package models

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDigestString(t *testing.T) {
	var d Digest
	d[0] = 0xab
	d[31] = 0x01

	s := d.String()
	if len(s) != 64 {
		t.Errorf("String() length = %d, want 64", len(s))
	}
	if !strings.HasPrefix(s, "ab") {
		t.Errorf("String() = %s, want prefix 'ab'", s)
	}
	if !strings.HasSuffix(s, "01") {
		t.Errorf("String() = %s, want suffix '01'", s)
	}
}

func TestHashOutcomeFailed(t *testing.T) {
	ok := HashOutcome{Entry: FileEntry{Path: "/a"}}
	if ok.Failed() {
		t.Error("Failed() = true for successful outcome")
	}

	bad := HashOutcome{Entry: FileEntry{Path: "/b"}, Err: errors.New("read error")}
	if !bad.Failed() {
		t.Error("Failed() = false for failed outcome")
	}
}

func TestFileEntryDisplayPath(t *testing.T) {
	e := FileEntry{Path: "/root/sub/file.txt", RelativePath: "sub/file.txt"}

	if got := e.DisplayPath(false); got != "/root/sub/file.txt" {
		t.Errorf("DisplayPath(false) = %s", got)
	}
	if got := e.DisplayPath(true); got != "sub/file.txt" {
		t.Errorf("DisplayPath(true) = %s", got)
	}
}

func TestSelection(t *testing.T) {
	if (Selection{}).Any() {
		t.Error("empty selection reports Any() = true")
	}

	all := SelectAll()
	if !all.Intersection || !all.Dir1Only || !all.Dir2Only {
		t.Errorf("SelectAll() = %+v, want all true", all)
	}
	if !all.Any() {
		t.Error("SelectAll().Any() = false")
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		code   int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusFailed, 2},
		{RunStatus("bogus"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestCompareOperationValidate(t *testing.T) {
	valid := func() *CompareOperation {
		return &CompareOperation{
			Dir1Path:   "/a",
			Dir2Path:   "/b",
			Selection:  SelectAll(),
			Algorithm:  HashBLAKE3,
			MaxWorkers: 4,
			BufferSize: 65536,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid operation = %v", err)
	}

	t.Run("MissingDir1", func(t *testing.T) {
		op := valid()
		op.Dir1Path = ""
		assertValidationError(t, op.Validate(), "Dir1Path")
	})

	t.Run("MissingDir2", func(t *testing.T) {
		op := valid()
		op.Dir2Path = ""
		assertValidationError(t, op.Validate(), "Dir2Path")
	})

	t.Run("NegativeWorkers", func(t *testing.T) {
		op := valid()
		op.MaxWorkers = -1
		assertValidationError(t, op.Validate(), "MaxWorkers")
	})

	t.Run("TinyBuffer", func(t *testing.T) {
		op := valid()
		op.BufferSize = 512
		assertValidationError(t, op.Validate(), "BufferSize")
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		op := valid()
		op.Algorithm = "md5"
		assertValidationError(t, op.Validate(), "Algorithm")
	})

	t.Run("NothingSelected", func(t *testing.T) {
		op := valid()
		op.Selection = Selection{}
		assertValidationError(t, op.Validate(), "Selection")
	})
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error type = %T, want *ValidationError", err)
	}
	if verr.Field != field {
		t.Errorf("ValidationError.Field = %s, want %s", verr.Field, field)
	}
	if !bytes.Contains([]byte(verr.Error()), []byte(field)) {
		t.Errorf("Error() = %q does not mention field %s", verr.Error(), field)
	}
}
