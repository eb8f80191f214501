package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	m "github.com/mouse-blink/nodecov/internal/model"
)

// ErrRuntimeUnavailable is returned when no instrumentable runtime could be started.
var ErrRuntimeUnavailable = errors.New("runtime unavailable")

// Runtime starts profiling sessions.
type Runtime interface {
	// Open prepares entrypoint for execution under a profiling session. The
	// entrypoint does not run until Session.Run is called.
	Open(ctx context.Context, entrypoint string) (Session, error)
}

// Session is a live profiling session bound to one execution of an entrypoint.
type Session interface {
	Enable(ctx context.Context) error
	StartPreciseCoverage(ctx context.Context, opts m.CoverageOptions) error
	// Run executes the entrypoint and returns once it and its top-level
	// asynchronous work have settled.
	Run(ctx context.Context) error
	TakePreciseCoverage(ctx context.Context) (m.CoverageSnapshot, error)
	StopPreciseCoverage(ctx context.Context) error
	// Self is the path of the module that loads the entrypoint.
	Self() m.Path
	// OffsetUnit is the unit of the range offsets in snapshots.
	OffsetUnit() m.OffsetUnit
	Close() error
}

// ExitError reports that the runtime went away before the entrypoint settled.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("node exited with status %d before the entrypoint settled", e.Code)
}

// UnsettledError reports that node ran out of work while the entrypoint was
// still pending, such as a top-level await that never resolves or an early
// process.exit. Code is node's exit status once it let go, or -1.
type UnsettledError struct {
	Code int
}

func (e *UnsettledError) Error() string {
	return fmt.Sprintf("entrypoint did not settle (unfinished top-level await or early exit); node exited with status %d", e.Code)
}

// ScriptError carries an exception thrown while loading or running the entrypoint.
type ScriptError struct {
	Description string
}

func (e *ScriptError) Error() string {
	return e.Description
}

const (
	defaultNodeBinary  = "node"
	loaderPattern      = "nodecov-loader-*.mjs"
	handshakeTimeout   = 10 * time.Second
	shutdownTimeout    = 5 * time.Second
	breakOnStartReason = "Break on start"
)

var listeningPattern = regexp.MustCompile(`Debugger listening on (ws://\S+)`)

// Inspector chatter node writes to stderr around a debugging session.
var inspectorNoise = []string{
	"For help, see: https://nodejs.org/en/docs/inspector",
	"Debugger attached.",
}

const waitingForDisconnect = "Waiting for the debugger to disconnect..."

// loaderSource imports the entrypoint, records any failure and stops on a
// debugger statement so the session knows every top-level await has settled.
const loaderSource = `let failure;
try {
  await import(%s);
} catch (err) {
  failure = err;
}
debugger;
if (failure !== undefined) {
  process.exitCode = 1;
}
`

// failureExpression is evaluated on the loader's final frame.
const failureExpression = `failure === undefined ? "" : String((failure && failure.stack) || failure)`

// NodeRuntime launches node with the inspector enabled.
type NodeRuntime struct {
	binary    string
	fsAdapter SourceFSAdapter
	stdout    io.Writer
	stderr    io.Writer
}

// NewNodeRuntime constructs a NodeRuntime forwarding the entrypoint's output
// to stdout and stderr.
func NewNodeRuntime(fsAdapter SourceFSAdapter, stdout, stderr io.Writer) *NodeRuntime {
	return &NodeRuntime{
		binary:    defaultNodeBinary,
		fsAdapter: fsAdapter,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Open stages a loader module, starts node paused on it and attaches the inspector.
func (r *NodeRuntime) Open(ctx context.Context, entrypoint string) (Session, error) {
	binary, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRuntimeUnavailable, err)
	}

	target, err := EntrypointURL(entrypoint)
	if err != nil {
		return nil, err
	}

	quoted, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("encode entrypoint: %w", err)
	}

	loader, err := r.fsAdapter.CreateTempFile(loaderPattern, fmt.Appendf(nil, loaderSource, quoted))
	if err != nil {
		return nil, fmt.Errorf("stage loader: %w", err)
	}

	sess, err := r.start(ctx, binary, loader)
	if err != nil {
		_ = r.fsAdapter.Remove(loader)
		return nil, err
	}

	return sess, nil
}

func (r *NodeRuntime) start(ctx context.Context, binary string, loader m.Path) (*NodeSession, error) {
	cmd := exec.CommandContext(ctx, binary, "--inspect-brk=127.0.0.1:0", string(loader))
	cmd.Stdout = r.stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrRuntimeUnavailable, binary, err)
	}

	sess := newNodeSession(cmd, r.fsAdapter, loader)

	endpoint := make(chan string, 1)
	stderrDone := make(chan struct{})

	go func() {
		defer close(stderrDone)
		sess.forwardStderr(stderr, r.stderr, endpoint)
	}()

	go func() {
		<-stderrDone
		sess.waitErr = cmd.Wait()
		close(sess.exited)
	}()

	timer := time.NewTimer(handshakeTimeout)
	defer timer.Stop()

	var wsURL string

	select {
	case wsURL = <-endpoint:
	case <-sess.exited:
		return nil, fmt.Errorf("%w: node exited before the inspector started: %v", ErrRuntimeUnavailable, sess.waitErr)
	case <-timer.C:
		sess.kill()
		return nil, fmt.Errorf("%w: no inspector endpoint after %s", ErrRuntimeUnavailable, handshakeTimeout)
	case <-ctx.Done():
		sess.kill()
		return nil, ctx.Err()
	}

	inspector, err := DialInspector(ctx, wsURL)
	if err != nil {
		sess.kill()
		return nil, fmt.Errorf("%w: %v", ErrRuntimeUnavailable, err)
	}

	sess.attach(inspector)

	return sess, nil
}

// NodeSession is a Session backed by a node child process.
type NodeSession struct {
	cmd       *exec.Cmd
	inspector Inspector
	fsAdapter SourceFSAdapter
	loader    m.Path
	pauses    chan pause

	exited   chan struct{}
	waitErr  error
	draining chan struct{}
	closing  chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// pause is a Debugger.paused event classified against the loader script.
type pause struct {
	callFrameID string
	inLoader    bool
	err         error
}

type scriptParsedEvent struct {
	ScriptID string `json:"scriptId"`
	URL      string `json:"url"`
}

type pausedEvent struct {
	Reason     string `json:"reason"`
	CallFrames []struct {
		CallFrameID string `json:"callFrameId"`
		URL         string `json:"url"`
		Location    struct {
			ScriptID string `json:"scriptId"`
		} `json:"location"`
	} `json:"callFrames"`
}

func newNodeSession(cmd *exec.Cmd, fsAdapter SourceFSAdapter, loader m.Path) *NodeSession {
	return &NodeSession{
		cmd:       cmd,
		fsAdapter: fsAdapter,
		loader:    loader,
		pauses:    make(chan pause, eventBuffer),
		exited:    make(chan struct{}),
		draining:  make(chan struct{}),
		closing:   make(chan struct{}),
	}
}

// attach binds the session to inspector and starts following its debugger events.
func (s *NodeSession) attach(inspector Inspector) {
	s.inspector = inspector
	go s.watch(inspector.Subscribe("Debugger.scriptParsed", "Debugger.paused"))
}

// watch drains debugger events until the connection goes away. Module frames
// carry no URL in pause events, so the loader is recognised by the script id
// announced when it was parsed.
func (s *NodeSession) watch(events <-chan Event) {
	var loaderScript string

	for {
		select {
		case ev := <-events:
			switch ev.Method {
			case "Debugger.scriptParsed":
				var p scriptParsedEvent
				if err := json.Unmarshal(ev.Params, &p); err == nil && s.isLoaderURL(p.URL) {
					loaderScript = p.ScriptID
				}
			case "Debugger.paused":
				s.deliver(classifyPause(ev.Params, loaderScript, s.isLoaderURL))
			}
		case <-s.inspector.Done():
			return
		}
	}
}

func (s *NodeSession) deliver(p pause) {
	select {
	case s.pauses <- p:
	case <-s.closing:
	}
}

func classifyPause(params json.RawMessage, loaderScript string, isLoaderURL func(string) bool) pause {
	var p pausedEvent
	if err := json.Unmarshal(params, &p); err != nil {
		return pause{err: fmt.Errorf("decode Debugger.paused: %w", err)}
	}

	if len(p.CallFrames) == 0 {
		return pause{}
	}

	top := p.CallFrames[0]
	inLoader := p.Reason != breakOnStartReason &&
		((loaderScript != "" && top.Location.ScriptID == loaderScript) || isLoaderURL(top.URL))

	return pause{callFrameID: top.CallFrameID, inLoader: inLoader}
}

type evaluateResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
}

// Enable turns on the Runtime, Debugger and Profiler domains.
func (s *NodeSession) Enable(ctx context.Context) error {
	for _, method := range []string{"Runtime.enable", "Debugger.enable", "Profiler.enable"} {
		if err := s.inspector.Call(ctx, method, nil, nil); err != nil {
			return err
		}
	}

	return nil
}

// StartPreciseCoverage starts precise coverage collection.
func (s *NodeSession) StartPreciseCoverage(ctx context.Context, opts m.CoverageOptions) error {
	return s.inspector.Call(ctx, "Profiler.startPreciseCoverage", opts, nil)
}

// TakePreciseCoverage snapshots the coverage collected so far.
func (s *NodeSession) TakePreciseCoverage(ctx context.Context) (m.CoverageSnapshot, error) {
	var snapshot m.CoverageSnapshot
	if err := s.inspector.Call(ctx, "Profiler.takePreciseCoverage", nil, &snapshot); err != nil {
		return m.CoverageSnapshot{}, err
	}

	return snapshot, nil
}

// StopPreciseCoverage stops precise coverage collection.
func (s *NodeSession) StopPreciseCoverage(ctx context.Context) error {
	return s.inspector.Call(ctx, "Profiler.stopPreciseCoverage", nil, nil)
}

// Self returns the loader path.
func (s *NodeSession) Self() m.Path {
	return s.loader
}

// OffsetUnit reports UTF-16 code units, which is how V8 indexes scripts.
func (s *NodeSession) OffsetUnit() m.OffsetUnit {
	return m.UnitUTF16
}

// Run releases node from its start-up pause and blocks until the loader
// reaches its closing debugger statement.
func (s *NodeSession) Run(ctx context.Context) error {
	if err := s.inspector.Call(ctx, "Runtime.runIfWaitingForDebugger", nil, nil); err != nil {
		return err
	}

	for {
		select {
		case p := <-s.pauses:
			if p.err != nil {
				return p.err
			}

			if !p.inLoader {
				if err := s.inspector.Call(ctx, "Debugger.resume", nil, nil); err != nil {
					return err
				}

				continue
			}

			return s.loaderFailure(ctx, p.callFrameID)
		case <-s.draining:
			return s.unsettled(ctx)
		case <-s.exited:
			return &ExitError{Code: s.exitCode()}
		case <-s.inspector.Done():
			return fmt.Errorf("wait for entrypoint: %w", ErrInspectorClosed)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// unsettled lets go of a node process that only lingers for the debugger and
// reports the status it exits with.
func (s *NodeSession) unsettled(ctx context.Context) error {
	_ = s.inspector.Close()

	timer := time.NewTimer(shutdownTimeout)
	defer timer.Stop()

	select {
	case <-s.exited:
	case <-timer.C:
	case <-ctx.Done():
	}

	return &UnsettledError{Code: s.exitCode()}
}

// Close resumes the loader, disconnects and waits for node to exit, killing
// it when it lingers. The staged loader is removed.
func (s *NodeSession) Close() error {
	s.closeOnce.Do(func() {
		close(s.closing)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if s.inspector != nil {
			_ = s.inspector.Call(ctx, "Debugger.resume", nil, nil)
			_ = s.inspector.Close()
		}

		select {
		case <-s.exited:
		case <-ctx.Done():
			s.kill()
		}

		s.closeErr = s.fsAdapter.Remove(s.loader)
	})

	return s.closeErr
}

func (s *NodeSession) isLoaderURL(raw string) bool {
	path, ok := FileURLToPath(raw)

	return ok && m.Path(path) == s.loader
}

func (s *NodeSession) loaderFailure(ctx context.Context, callFrameID string) error {
	var res evaluateResult

	err := s.inspector.Call(ctx, "Debugger.evaluateOnCallFrame", map[string]any{
		"callFrameId":   callFrameID,
		"expression":    failureExpression,
		"returnByValue": true,
	}, &res)
	if err != nil {
		return err
	}

	var description string
	if err := json.Unmarshal(res.Result.Value, &description); err != nil {
		return fmt.Errorf("decode entrypoint status: %w", err)
	}

	if description != "" {
		return &ScriptError{Description: description}
	}

	return nil
}

func (s *NodeSession) forwardStderr(r io.Reader, w io.Writer, endpoint chan<- string) {
	scanner := bufio.NewScanner(r)
	announced := false

	for scanner.Scan() {
		line := scanner.Text()

		if !announced {
			if match := listeningPattern.FindStringSubmatch(line); match != nil {
				announced = true
				endpoint <- match[1]

				continue
			}
		}

		if strings.TrimSpace(line) == waitingForDisconnect {
			s.markDraining()
			continue
		}

		if isInspectorNoise(line) {
			continue
		}

		_, _ = fmt.Fprintln(w, line)
	}
}

func (s *NodeSession) markDraining() {
	select {
	case <-s.draining:
	default:
		close(s.draining)
	}
}

func (s *NodeSession) exitCode() int {
	select {
	case <-s.exited:
		if s.cmd.ProcessState != nil {
			return s.cmd.ProcessState.ExitCode()
		}
	default:
	}

	return -1
}

func (s *NodeSession) kill() {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}

	<-s.exited
}

func isInspectorNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, noise := range inspectorNoise {
		if trimmed == noise {
			return true
		}
	}

	return false
}

// EntrypointURL turns a module reference into something import() accepts.
// Filesystem paths are made absolute and converted to file URLs; anything
// that already carries a scheme is passed through.
func EntrypointURL(entrypoint string) (string, error) {
	if entrypoint == "" {
		return "", errors.New("empty entrypoint")
	}

	if u, err := url.Parse(entrypoint); err == nil && len(u.Scheme) > 1 {
		return entrypoint, nil
	}

	abs, err := filepath.Abs(entrypoint)
	if err != nil {
		return "", fmt.Errorf("resolve entrypoint %s: %w", entrypoint, err)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// FileURLToPath converts a file:// URL to a filesystem path. References
// without a scheme are returned unchanged; any other scheme reports false.
func FileURLToPath(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw, !strings.Contains(raw, "://")
	}

	switch {
	case u.Scheme == "file":
		return filepath.FromSlash(u.Path), u.Path != ""
	case len(u.Scheme) > 1:
		return "", false
	default:
		return raw, true
	}
}
