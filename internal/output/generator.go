package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/engine"
	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/fsutil"
	"github.com/vk/taintgrid/internal/groundtruth"
)

// Paths inside the generated Android project.
const (
	mainDir         = "app/src/main"
	srcDir          = "app/src"
	manifestFile    = mainDir + "/AndroidManifest.xml"
	layoutFile      = mainDir + "/res/layout/activity.xml"
	javaDir         = mainDir + "/java"
	apkFile         = "app/build/outputs/apk/debug/app-debug.apk"
	buildFile       = "app/build.gradle"
	proguardFile    = "app/proguard-rules.pro"
	localProperties = "local.properties"
)

// Names inside a benchmark case directory.
const (
	CaseAPK             = "generated-app.apk"
	CaseConfig          = "app-config.txt"
	CaseGroundTruth     = "ground-truth.xml"
	CaseFullGroundTruth = "full-ground-truth.xml"
	CaseReport          = "report.yaml"
)

// Generator writes into one generated Android project.
type Generator struct {
	// Dir is the root of the Android project skeleton.
	Dir     string
	Project string
	SDKDir  string
}

// WriteSources replaces the manifest, layout and Java sources of the project
// with the composed ones and points the build at the Android SDK.
func (g *Generator) WriteSources(ctx context.Context, res *engine.Result) error {
	logger := ctxlog.FromContext(ctx)

	for _, stale := range []string{manifestFile, filepath.Dir(layoutFile), javaDir} {
		if err := os.RemoveAll(g.path(stale)); err != nil {
			return fmt.Errorf("failed to clean %s: %w", stale, err)
		}
	}

	files := map[string]string{
		manifestFile:    res.Manifest,
		layoutFile:      res.Layout,
		localProperties: "sdk.dir=" + g.SDKDir,
	}
	pkgDir := filepath.Join(javaDir, filepath.Join(strings.Split(g.Project, ".")...))
	for _, u := range res.Units {
		files[filepath.Join(pkgDir, u.ClassName+".java")] = u.Content
	}

	for rel, content := range files {
		if err := fsutil.WriteFile(g.path(rel), content); err != nil {
			return err
		}
	}
	logger.Info("Sources written.", "dir", g.Dir, "units", len(res.Units))
	return nil
}

// CaseOptions controls where and how a benchmark case is collected.
type CaseOptions struct {
	OutputDir string
	// ConfigFile names the case after the configuration file it came from.
	ConfigFile string
	// Direct writes into OutputDir itself instead of a timestamped
	// subdirectory.
	Direct   bool
	Compiled bool
	RunID    string
	Now      time.Time
}

// Finish collects a benchmark case and returns its directory.
func (g *Generator) Finish(ctx context.Context, res *engine.Result, opts CaseOptions) (string, error) {
	logger := ctxlog.FromContext(ctx)
	dir := CaseDir(opts)

	var app groundtruth.Artifact
	if opts.Compiled {
		apk := filepath.Join(dir, CaseAPK)
		if err := fsutil.Copy(g.path(apkFile), apk); err != nil {
			return "", fmt.Errorf("failed to collect application: %w", err)
		}
		var err error
		if app, err = groundtruth.HashFile(apk); err != nil {
			return "", err
		}
	}

	if err := fsutil.Copy(g.path(srcDir), filepath.Join(dir, "src")); err != nil {
		return "", fmt.Errorf("failed to collect sources: %w", err)
	}
	for _, f := range []string{buildFile, proguardFile} {
		if !fsutil.Exists(g.path(f)) {
			logger.Warn("Build file missing from project skeleton.", "file", f)
			continue
		}
		if err := fsutil.Copy(g.path(f), filepath.Join(dir, filepath.Base(f))); err != nil {
			return "", fmt.Errorf("failed to collect %s: %w", f, err)
		}
	}

	if err := fsutil.WriteFile(filepath.Join(dir, CaseConfig), res.Config); err != nil {
		return "", err
	}
	docs := map[string][]flow.Connection{
		CaseGroundTruth:     res.Connections.SourceSink,
		CaseFullGroundTruth: res.Connections.All,
	}
	for name, conns := range docs {
		out, err := groundtruth.Build(g.Project, conns, res.Lines, app).Marshal()
		if err != nil {
			return "", err
		}
		if err := fsutil.WriteFile(filepath.Join(dir, name), string(out)); err != nil {
			return "", err
		}
	}

	report, err := NewReport(res, g.Project, opts).Marshal()
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteFile(filepath.Join(dir, CaseReport), string(report)); err != nil {
		return "", err
	}

	logger.Info("Benchmark case written.", "dir", dir, "flows", len(res.Connections.SourceSink))
	return dir, nil
}

// CaseDir picks the case directory. A case named after its configuration
// file gets a timestamp suffix when the name is taken.
func CaseDir(opts CaseOptions) string {
	if opts.ConfigFile != "" {
		dir := filepath.Join(opts.OutputDir, strings.ReplaceAll(opts.ConfigFile, "/", "-"))
		if fsutil.Exists(dir) {
			dir += "-" + timestamp(opts.Now)
		}
		return dir
	}
	if opts.Direct {
		return opts.OutputDir
	}
	return filepath.Join(opts.OutputDir, timestamp(opts.Now))
}

func timestamp(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d_%d", t.Year(), int(t.Month()), t.Day(), t.UnixMilli())
}

func (g *Generator) path(rel string) string {
	return filepath.Join(g.Dir, rel)
}
