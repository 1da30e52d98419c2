package saga

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"
)

var discard = slog.New(slog.DiscardHandler)

func recordingStep(name string, log *[]string, fail error) Step {
	return Step{
		Name: name,
		Do: func(context.Context) error {
			*log = append(*log, "do:"+name)
			return fail
		},
		Undo: func(context.Context) error {
			*log = append(*log, "undo:"+name)
			return nil
		},
	}
}

func TestRunAllStepsSucceed(t *testing.T) {
	var log []string
	err := Run(context.Background(), discard,
		recordingStep("a", &log, nil),
		recordingStep("b", &log, nil),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := []string{"do:a", "do:b"}; !reflect.DeepEqual(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestRunCompensatesInReverse(t *testing.T) {
	boom := errors.New("boom")
	var log []string

	err := Run(context.Background(), discard,
		recordingStep("a", &log, nil),
		recordingStep("b", &log, nil),
		recordingStep("c", &log, boom),
		recordingStep("d", &log, nil),
	)

	want := []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the failing step's error", err)
	}
	var se *StepError
	if !errors.As(err, &se) || se.Step != "c" {
		t.Fatalf("error = %#v, want StepError for c", err)
	}
	var re *RollbackError
	if errors.As(err, &re) {
		t.Fatalf("clean rollback must not report RollbackError")
	}
}

func TestRunReportsFailedCompensation(t *testing.T) {
	boom := errors.New("persist failed")
	stuck := errors.New("delete failed")

	err := Run(context.Background(), discard,
		Step{
			Name: "create",
			Do:   func(context.Context) error { return nil },
			Undo: func(context.Context) error { return stuck },
		},
		Step{
			Name: "persist",
			Do:   func(context.Context) error { return boom },
		},
	)

	if !errors.Is(err, boom) || !errors.Is(err, stuck) {
		t.Fatalf("error = %v, want both failures", err)
	}
	var re *RollbackError
	if !errors.As(err, &re) || re.Step != "create" {
		t.Fatalf("error = %v, want RollbackError for create", err)
	}
}

func TestCompensationOutlivesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoCtxErr error

	_ = Run(ctx, discard,
		Step{
			Name: "create",
			Do:   func(context.Context) error { return nil },
			Undo: func(c context.Context) error {
				undoCtxErr = c.Err()
				return nil
			},
		},
		Step{
			Name: "persist",
			Do: func(context.Context) error {
				cancel()
				return context.Canceled
			},
		},
	)

	if undoCtxErr != nil {
		t.Fatalf("compensation ran with cancelled context: %v", undoCtxErr)
	}
}
