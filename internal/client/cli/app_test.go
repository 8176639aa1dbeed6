package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mriscan/internal/client/client"
	"github.com/dmitrijs2005/mriscan/internal/client/config"
	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/preview"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mriscan/internal/client/services"
	"github.com/dmitrijs2005/mriscan/internal/common"
	"github.com/dmitrijs2005/mriscan/internal/logging"
)

type fakeClient struct {
	mu      sync.Mutex
	pingErr error
	body    map[string]any
	err     error
}

func (f *fakeClient) Predict(ctx context.Context, img models.UploadedImage) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.body, f.err
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeClient) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

func (f *fakeClient) Close() error { return nil }

// output collects printlnFn lines; the workflow hook prints from its own
// goroutine.
type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) has(line string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, l := range o.lines {
		if l == line {
			return true
		}
	}
	return false
}

func (o *output) hasPrefix(prefix string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, l := range o.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func newTestApp(t *testing.T, fc *fakeClient, input string) (*App, *output) {
	t.Helper()

	out := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		out.lines = append(out.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		out.mu.Unlock()
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	stubTerminal(t, false, nil)

	log := logging.Discard()
	cfg := &config.Config{ExportDir: t.TempDir()}
	repos := client.NewRepositoriesOver(metadata.NewMemoryRepository())
	a := &App{
		config:    cfg,
		log:       log,
		inference: fc,
		sessions:  services.NewSessionManager(repos.Accounts, repos.Sessions, log),
		reports:   services.NewReportService(repos.Reports, cfg.ExportDir, log),
		reader:    rdr(input),
		out:       io.Discard,
	}
	a.workflow = services.NewAnalysisWorkflow(fc, preview.NewRegistry(), log, services.WorkflowOptions{
		RequestTimeout: time.Second,
		OnTransition:   a.notify,
	})
	t.Cleanup(a.workflow.Close)
	return a, out
}

func writeScan(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 16, 16))))
	path := filepath.Join(t.TempDir(), "brain.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func waitState(t *testing.T, a *App, want models.State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return a.workflow.Snapshot().State == want
	}, 2*time.Second, 5*time.Millisecond)
}

func TestApp_SignupThenLogoutAndLoginAgain(t *testing.T) {
	a, out := newTestApp(t, &fakeClient{},
		"Alice\nalice@example.com\nsecret1\nalice@example.com\nsecret1\n")
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx))
	require.True(t, a.isLoggedIn())
	require.True(t, out.has("Account created. Welcome, Alice!"))
	require.Equal(t, "(Alice)", a.getStatus())

	require.NoError(t, a.Logout(ctx))
	require.False(t, a.isLoggedIn())

	require.NoError(t, a.Login(ctx))
	require.True(t, out.has("Welcome, Alice!"))
}

func TestApp_LoginRejectsBadPassword(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{}, models.SeedEmail+"\nwrong\n")

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.False(t, a.isLoggedIn())
}

func TestApp_AnalyzeSaveListExport(t *testing.T) {
	fc := &fakeClient{body: map[string]any{"prediction": "Mild Dementia", "confidence": 87.26}}
	a, out := newTestApp(t, fc, models.SeedEmail+"\n"+models.SeedPassword+"\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Select(ctx, writeScan(t)))
	require.True(t, out.hasPrefix("Selected brain.png ("))

	require.NoError(t, a.Analyze(ctx))
	waitState(t, a, models.StateResult)
	require.Eventually(t, func() bool {
		return out.has("Analysis complete: Mild Dementia (87.3%)")
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, a.Status(ctx))
	require.True(t, out.has("Prediction: Mild Dementia (87.3%)"))

	require.NoError(t, a.Save(ctx))
	require.NotNil(t, a.lastReport)
	id := a.lastReport.ID
	require.Equal(t, models.SeedEmail, a.lastReport.UserID)
	require.True(t, out.has("Report saved: "+id))

	require.NoError(t, a.Reports(ctx))
	require.True(t, out.hasPrefix(id+"  "))

	require.NoError(t, a.Export(ctx, ""))
	require.NoError(t, a.Export(ctx, id))
	require.FileExists(t, filepath.Join(a.config.ExportDir, "report-"+id+".html"))

	err := a.Export(ctx, "missing")
	require.ErrorIs(t, err, errReportNotFound)
}

func TestApp_ExportWithoutSavingBuildsFreshReport(t *testing.T) {
	fc := &fakeClient{body: map[string]any{"result": "Non Demented"}}
	a, out := newTestApp(t, fc, models.SeedEmail+"\n"+models.SeedPassword+"\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Select(ctx, writeScan(t)))
	require.NoError(t, a.Analyze(ctx))
	waitState(t, a, models.StateResult)

	require.NoError(t, a.Export(ctx, ""))
	require.True(t, out.hasPrefix("Report written to "))
	require.Nil(t, a.lastReport)
}

func TestApp_SaveAndExportNeedResult(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{}, models.SeedEmail+"\n"+models.SeedPassword+"\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.ErrorIs(t, a.Save(ctx), common.ErrValidation)
	require.ErrorIs(t, a.Export(ctx, ""), common.ErrValidation)
}

func TestApp_FailedAnalysisIsAnnounced(t *testing.T) {
	fc := &fakeClient{err: &common.StatusError{Code: 500, Status: "Internal Server Error"}}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.NoError(t, a.Select(ctx, writeScan(t)))
	require.NoError(t, a.Analyze(ctx))
	waitState(t, a, models.StateError)

	require.Eventually(t, func() bool {
		return out.hasPrefix("Analysis failed: ")
	}, time.Second, 5*time.Millisecond)
}

func TestApp_SelectMissingFile(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{}, "")

	err := a.Select(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	require.Equal(t, models.StateIdle, a.workflow.Snapshot().State)
}

func TestApp_RemoveAndLogoutResetAnalysis(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{}, models.SeedEmail+"\n"+models.SeedPassword+"\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Select(ctx, writeScan(t)))
	require.NoError(t, a.Remove(ctx))
	require.Equal(t, models.StateIdle, a.workflow.Snapshot().State)

	require.NoError(t, a.Select(ctx, writeScan(t)))
	require.NoError(t, a.Logout(ctx))
	require.Equal(t, models.StateIdle, a.workflow.Snapshot().State)
}

func TestStartOnlineStatusWatcher_TracksPing(t *testing.T) {
	fc := &fakeClient{pingErr: errors.New("down")}
	a, _ := newTestApp(t, fc, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.mode() == ModeOffline }, time.Second, 5*time.Millisecond)
	require.Equal(t, "(offline)", a.getStatus())

	fc.setPingErr(nil)
	require.Eventually(t, func() bool { return a.mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunREPL_PipedSessionAgainstApp(t *testing.T) {
	fc := &fakeClient{body: map[string]any{"prediction": "Very Mild Dementia", "confidence": 64.0}}
	scanPath := writeScan(t)
	a, out := newTestApp(t, fc, strings.Join([]string{
		"login",
		models.SeedEmail,
		models.SeedPassword,
		"reports",
		"select " + scanPath,
		"status",
		"logout",
		"signup",
		"Ann",
		"ann@example.com",
		"secret1",
		"exit",
	}, "\n")+"\n")

	runREPL(context.Background(), a, a.getStatus, a.reader)

	require.True(t, out.has("Welcome, "+models.SeedName+"!"))
	require.True(t, out.has("No reports yet"))
	require.True(t, out.hasPrefix("Selected brain.png ("))
	require.True(t, out.has("State: FileSelected"))
	require.True(t, out.has("Logged out"))
	require.True(t, out.has("Account created. Welcome, Ann!"))
	require.True(t, out.has("Bye!"))
	require.False(t, out.hasPrefix("Error:"))

	cur, ok := a.sessions.Current()
	require.True(t, ok)
	require.Equal(t, "ann@example.com", cur.Email)
}

func TestStartOnlineStatusWatcher_NonPositiveIntervalChecksOnce(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
