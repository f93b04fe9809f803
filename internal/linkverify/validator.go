// Package linkverify decides whether a reference points at something that exists.
package linkverify

import (
	"context"
	"io/fs"
	"log/slog"
	"net/mail"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/markdown"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// Validator classifies references as valid or broken. Expected failures never surface as
// errors: an unreachable host, a missing file or an unknown anchor all yield false.
type Validator struct {
	prober        Prober
	allowAbsolute bool
	stat          func(string) (fs.FileInfo, error)
	readFile      func(string) ([]byte, error)
	logger        *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithProber replaces the remote prober.
func WithProber(p Prober) Option {
	return func(v *Validator) { v.prober = p }
}

// WithAllowAbsolute lets absolute local paths be checked as-is instead of counting as broken.
func WithAllowAbsolute(allow bool) Option {
	return func(v *Validator) { v.allowAbsolute = allow }
}

// WithFS replaces the filesystem accessors.
func WithFS(stat func(string) (fs.FileInfo, error), readFile func(string) ([]byte, error)) Option {
	return func(v *Validator) {
		v.stat = stat
		v.readFile = readFile
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// NewValidator creates a Validator probing with an HTTPProber using DefaultTimeout.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		prober:   NewHTTPProber(DefaultTimeout),
		stat:     os.Stat,
		readFile: os.ReadFile,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reports whether ref resolves.
func (v *Validator) Validate(ctx context.Context, ref reference.Reference) bool {
	if ref.Remote {
		return v.validateRemote(ctx, ref)
	}
	return v.validateLocal(ref)
}

func (v *Validator) validateRemote(ctx context.Context, ref reference.Reference) bool {
	if reference.IsMail(ref.Target) {
		ok := validMailTarget(ref.Target)
		if !ok {
			v.logger.Debug("Invalid mail address", logfields.File(ref.SourcePath), logfields.Target(ref.Target))
		}
		return ok
	}

	start := time.Now()
	status, err := v.prober.Probe(ctx, ref.Target)
	if err != nil {
		v.logger.Debug("Remote probe failed",
			logfields.File(ref.SourcePath),
			logfields.Target(ref.Target),
			logfields.Duration(time.Since(start)),
			logfields.Error(err))
		return false
	}

	v.logger.Debug("Remote probe answered",
		logfields.Target(ref.Target),
		logfields.Status(status),
		logfields.Duration(time.Since(start)))
	return statusOK(status)
}

// validMailTarget checks the address list of a mailto: URI or a bare address; query parameters are ignored.
func validMailTarget(target string) bool {
	addr := target
	if scheme, ok := reference.Scheme(target); ok && scheme == "mailto" {
		addr = target[len("mailto:"):]
	}
	addr, _, _ = strings.Cut(addr, "?")
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	if strings.TrimSpace(addr) == "" {
		return false
	}
	_, err := mail.ParseAddressList(addr)
	return err == nil
}

func (v *Validator) validateLocal(ref reference.Reference) bool {
	pathPart, fragment, _ := ref.SplitTarget()

	resolved, ok := v.resolve(ref.SourcePath, pathPart)
	if !ok {
		v.logger.Debug("Absolute path not allowed", logfields.File(ref.SourcePath), logfields.Target(ref.Target))
		return false
	}

	info, ok := v.exists(resolved)
	if !ok {
		v.logger.Debug("Target does not exist", logfields.File(ref.SourcePath), logfields.Path(resolved))
		return false
	}
	if fragment == "" {
		return true
	}
	if info.IsDir() {
		return false
	}

	src, err := v.readFile(info.path)
	if err != nil {
		v.logger.Debug("Cannot read target", logfields.Path(info.path), logfields.Error(err))
		return false
	}

	index := markdown.BuildAnchorIndex(src)
	if index.Has(markdown.NormalizeFragment(fragment)) {
		return true
	}
	if decoded, err := url.PathUnescape(fragment); err == nil && index.Has(markdown.NormalizeFragment(decoded)) {
		return true
	}
	v.logger.Debug("Anchor not found", logfields.File(ref.SourcePath), logfields.Target(ref.Target))
	return false
}

// resolve maps a target path onto the filesystem. An empty path is the source document itself.
func (v *Validator) resolve(source, pathPart string) (string, bool) {
	if pathPart == "" {
		return source, true
	}
	p := filepath.FromSlash(pathPart)
	if filepath.IsAbs(p) || strings.HasPrefix(pathPart, "/") {
		return p, v.allowAbsolute
	}
	return filepath.Join(filepath.Dir(source), p), true
}

type fileInfo struct {
	fs.FileInfo
	path string
}

// exists stats path, retrying with its percent-decoded form.
func (v *Validator) exists(path string) (fileInfo, bool) {
	if info, err := v.stat(path); err == nil {
		return fileInfo{FileInfo: info, path: path}, true
	}
	decoded, err := url.PathUnescape(path)
	if err != nil || decoded == path {
		return fileInfo{}, false
	}
	info, err := v.stat(decoded)
	if err != nil {
		return fileInfo{}, false
	}
	return fileInfo{FileInfo: info, path: decoded}, true
}
