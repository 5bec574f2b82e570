package word2pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

// ---------------------------------------------------------------------------
// TestPlanBatch - Discovery and Destination Mapping
// ---------------------------------------------------------------------------

func TestPlanBatch_FlatFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "b.doc", "a.docx", "c.txt", "~$a.docx", "D.DOCX", "sub/deep.docx")

	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatalf("PlanBatch() error = %v", err)
	}

	want := []Request{
		{Source: filepath.Join(root, "D.DOCX"), Destination: filepath.Join(root, "D.pdf")},
		{Source: filepath.Join(root, "a.docx"), Destination: filepath.Join(root, "a.pdf")},
		{Source: filepath.Join(root, "b.doc"), Destination: filepath.Join(root, "b.pdf")},
	}
	if diff := cmp.Diff(want, plan.Requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanBatch_OutputRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdf")
	writeFiles(t, root, "a.docx", "sub/x.docx", "sub/inner/y.doc")

	tests := []struct {
		name      string
		recursive bool
		want      []Request
	}{
		{
			name:      "flat ignores subfolders",
			recursive: false,
			want: []Request{
				{Source: filepath.Join(root, "a.docx"), Destination: filepath.Join(out, "a.pdf")},
			},
		},
		{
			name:      "recursive mirrors structure",
			recursive: true,
			want: []Request{
				{Source: filepath.Join(root, "a.docx"), Destination: filepath.Join(out, "a.pdf")},
				{Source: filepath.Join(root, "sub", "inner", "y.doc"), Destination: filepath.Join(out, "sub", "inner", "y.pdf")},
				{Source: filepath.Join(root, "sub", "x.docx"), Destination: filepath.Join(out, "sub", "x.pdf")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan, err := PlanBatch(root, out, tt.recursive)
			if err != nil {
				t.Fatalf("PlanBatch() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, plan.Requests); diff != "" {
				t.Errorf("requests mismatch (-want +got):\n%s", diff)
			}
			if plan.Recursive != tt.recursive || plan.Root != root || plan.OutputRoot != out {
				t.Errorf("plan header = %+v", plan)
			}
		})
	}
}

func TestPlanBatch_RecursiveWithoutOutputRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "sub/x.docx")

	plan, err := PlanBatch(root, "", true)
	if err != nil {
		t.Fatalf("PlanBatch() error = %v", err)
	}
	want := []Request{
		{Source: filepath.Join(root, "sub", "x.docx"), Destination: filepath.Join(root, "sub", "x.pdf")},
	}
	if diff := cmp.Diff(want, plan.Requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchPlan_RequestFor(t *testing.T) {
	t.Parallel()

	root := filepath.Join("in")
	out := filepath.Join("out")
	src := filepath.Join(root, "sub", "x.docx")

	tests := []struct {
		name string
		plan BatchPlan
		want string
	}{
		{"beside source", BatchPlan{Root: root}, filepath.Join(root, "sub", "x.pdf")},
		{"flat output", BatchPlan{Root: root, OutputRoot: out}, filepath.Join(out, "x.pdf")},
		{"mirrored output", BatchPlan{Root: root, OutputRoot: out, Recursive: true}, filepath.Join(out, "sub", "x.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.plan.RequestFor(src)
			if got.Source != src || got.Destination != tt.want {
				t.Errorf("RequestFor() = %+v, want destination %q", got, tt.want)
			}
		})
	}
}

func TestBatchPlan_Collisions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdf")
	writeFiles(t, root, "a.doc", "a.docx", "b.docx", "sub/a.docx")

	flat, err := PlanBatch(root, out, false)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{
		filepath.Join(out, "a.pdf"): {filepath.Join(root, "a.doc"), filepath.Join(root, "a.docx")},
	}
	if diff := cmp.Diff(want, flat.Collisions()); diff != "" {
		t.Errorf("flat collisions mismatch (-want +got):\n%s", diff)
	}

	unique := &BatchPlan{Requests: []Request{
		{Source: "a.docx", Destination: "a.pdf"},
		{Source: "b.docx", Destination: "b.pdf"},
	}}
	if got := unique.Collisions(); len(got) != 0 {
		t.Errorf("Collisions() = %v, want none", got)
	}
}

func TestConvertBatch_WarnsOnCollidingDestinations(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.doc", "a.docx")

	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatal(err)
	}
	conv, hook := newTestConverter(t, &mockLauncher{})
	report := conv.ConvertBatch(context.Background(), plan, nil)

	if report.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", report.Succeeded)
	}

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["destination"] == filepath.Join(root, "a.pdf") {
			warned = true
		}
	}
	if !warned {
		t.Error("no warning logged for a.doc and a.docx sharing a.pdf")
	}
}

func TestPlanBatch_NotADirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "file.docx")

	for _, path := range []string{filepath.Join(root, "missing"), filepath.Join(root, "file.docx")} {
		if _, err := PlanBatch(path, "", false); !errors.Is(err, ErrNotADirectory) {
			t.Errorf("PlanBatch(%q) error = %v, want %v", path, err, ErrNotADirectory)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Failure Isolation
// ---------------------------------------------------------------------------

func TestConvertBatch_MixedFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.doc", "c.txt")

	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatal(err)
	}
	mock := &mockLauncher{}
	conv, _ := newTestConverter(t, mock)

	report := conv.ConvertBatch(context.Background(), plan, nil)

	if report.Succeeded != 2 || report.Failed != 0 {
		t.Errorf("report = %d ok / %d failed, want 2 / 0", report.Succeeded, report.Failed)
	}
	for _, name := range []string{"a.pdf", "b.pdf"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "c.pdf")); err == nil {
		t.Error("c.txt must not be converted")
	}
	if diff := cmp.Diff([]string{"a.docx", "b.doc"}, mock.exported); diff != "" {
		t.Errorf("export order mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertBatch_FailureAtItemKContinues(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.docx", "c.docx")

	broken := errors.New("0x80010001: call was rejected by callee")
	mock := &mockLauncher{exportErr: map[string]error{"b.docx": broken}}
	conv, _ := newTestConverter(t, mock)

	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatal(err)
	}
	report := conv.ConvertBatch(context.Background(), plan, nil)

	if report.Succeeded != 2 || report.Failed != 1 {
		t.Fatalf("report = %d ok / %d failed, want 2 / 1", report.Succeeded, report.Failed)
	}
	if diff := cmp.Diff([]string{"b.docx"}, report.FailedNames); diff != "" {
		t.Errorf("FailedNames mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(report.Items[1].Err, broken) {
		t.Errorf("Items[1].Err = %v, want %v", report.Items[1].Err, broken)
	}
	if report.Items[2].Result == nil {
		t.Error("item after the failure was not converted")
	}

	launches, _, _, closes, quits := mock.counts()
	if launches != 3 || closes != 3 || quits != 3 {
		t.Errorf("launches/closes/quits = %d/%d/%d, want 3/3/3", launches, closes, quits)
	}
	if report.Total() != 3 || report.Empty() {
		t.Errorf("Total() = %d, Empty() = %v", report.Total(), report.Empty())
	}
}

func TestConvertBatch_EmptyFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	plan, err := PlanBatch(root, "", true)
	if err != nil {
		t.Fatalf("PlanBatch() error = %v", err)
	}

	mock := &mockLauncher{}
	conv, _ := newTestConverter(t, mock)

	events := make(chan Event, 8)
	report := conv.ConvertBatch(context.Background(), plan, events)
	close(events)

	if !report.Empty() {
		t.Errorf("Empty() = false for %+v", report)
	}
	if diff := cmp.Diff([]EventKind{EventPlanned, EventFinished}, kinds(collect(events))); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if launches, _, _, _, _ := mock.counts(); launches != 0 {
		t.Errorf("engine launched %d times, want 0", launches)
	}
}

func TestConvertBatch_NilPlan(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, &mockLauncher{})
	if report := conv.ConvertBatch(context.Background(), nil, nil); !report.Empty() {
		t.Errorf("report = %+v, want empty", report)
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Progress Events
// ---------------------------------------------------------------------------

func TestConvertBatch_EventSequence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.docx")

	mock := &mockLauncher{exportErr: map[string]error{"b.docx": errors.New("boom")}}
	conv, _ := newTestConverter(t, mock)
	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 32)
	report := conv.ConvertBatch(context.Background(), plan, events)
	close(events)
	got := collect(events)

	item := []EventKind{EventStarted, EventStage, EventStage, EventStage, EventStage}
	want := []EventKind{EventPlanned}
	want = append(want, item...)
	want = append(want, EventSucceeded)
	want = append(want, item...)
	want = append(want, EventFailed, EventFinished)
	if diff := cmp.Diff(want, kinds(got)); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}

	for _, ev := range got {
		if ev.Total != 2 {
			t.Errorf("%s event Total = %d, want 2", ev.Kind, ev.Total)
		}
		if ev.Time.IsZero() {
			t.Errorf("%s event has zero Time", ev.Kind)
		}
	}
	if got[6].Result == nil || got[6].Index != 0 {
		t.Errorf("succeeded event = %+v", got[6])
	}
	if got[12].Err == nil || got[12].Index != 1 {
		t.Errorf("failed event = %+v", got[12])
	}
	if got[13].Report != report {
		t.Error("finished event does not carry the report")
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Cancellation
// ---------------------------------------------------------------------------

func TestConvertBatch_CancelStopsRemainingItems(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.docx", "c.docx")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := &mockLauncher{onExport: func(string) { cancel() }}
	conv, _ := newTestConverter(t, mock)
	plan, err := PlanBatch(root, "", false)
	if err != nil {
		t.Fatal(err)
	}

	report := conv.ConvertBatch(ctx, plan, nil)

	if report.Succeeded != 0 || report.Failed != 3 {
		t.Fatalf("report = %d ok / %d failed, want 0 / 3", report.Succeeded, report.Failed)
	}
	for i, item := range report.Items {
		if !errors.Is(item.Err, context.Canceled) {
			t.Errorf("Items[%d].Err = %v, want context.Canceled", i, item.Err)
		}
	}

	launches, _, _, closes, quits := mock.counts()
	if launches != 1 || closes != 1 || quits != 1 {
		t.Errorf("launches/closes/quits = %d/%d/%d, want 1/1/1", launches, closes, quits)
	}
}
