package actions

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/ini.v1"
)

const (
	// DefaultExtension is the suffix of action definition files.
	DefaultExtension = ".nemo_action"
	// Group is the key file group holding the action keys.
	Group = "Nemo Action"

	keyName        = "Name"
	keyComment     = "Comment"
	keyIcon        = "Icon-Name"
	keyExec        = "Exec"
	keyActive      = "Active"
	keyAccelerator = "Accelerator"
)

// ErrMalformed marks an action file that could not be used.
var ErrMalformed = errors.New("malformed action file")

// Scanner enumerates installed action files.
type Scanner struct {
	ext    string
	locale language.Tag
	hasTag bool
	log    *logrus.Entry
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtension overrides the action file suffix.
func WithExtension(ext string) Option {
	return func(s *Scanner) {
		if ext != "" {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			s.ext = ext
		}
	}
}

// WithLocale selects localized Name values. Accepts POSIX locale strings
// such as "pt_BR.UTF-8".
func WithLocale(locale string) Option {
	return func(s *Scanner) {
		if tag, ok := parseLocale(locale); ok {
			s.locale = tag
			s.hasTag = true
		}
	}
}

// WithLogger sets the logger used for skipped files.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

func NewScanner(opts ...Option) *Scanner {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Scanner{
		ext: DefaultExtension,
		log: logrus.NewEntry(discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extension returns the action file suffix in use.
func (s *Scanner) Extension() string {
	return s.ext
}

// ActionDirs maps data directories to the action folders inside them.
func ActionDirs(dataDirs []string) []string {
	out := make([]string, 0, len(dataDirs))
	for _, d := range dataDirs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		out = append(out, filepath.Join(d, "nemo", "actions"))
	}
	return out
}

// Scan reads every action file in dirs, in order. Missing directories are
// skipped. Unusable files are logged and skipped. When an identifier appears
// in more than one directory the later one wins.
func (s *Scanner) Scan(dirs []string) *Pool {
	pool := NewPool()
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				s.log.WithError(err).WithField("dir", dir).Warn("cannot read action directory")
			}
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.ext) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			rec, err := s.ParseFile(path)
			if err != nil {
				s.log.WithError(err).WithField("file", path).Warn("skipping action file")
				continue
			}
			if prev, ok := pool.Get(rec.ID); ok {
				s.log.WithFields(logrus.Fields{
					"id":       rec.ID,
					"previous": prev.Path,
					"file":     path,
				}).Debug("action overridden by later directory")
			}
			pool.Put(rec)
		}
	}
	return pool
}

// ParseFile reads one action definition.
func (s *Scanner) ParseFile(path string) (*Record, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
		KeyValueDelimiters:  "=",
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	sec, err := cfg.GetSection(Group)
	if err != nil {
		return nil, fmt.Errorf("%w: missing [%s] group", ErrMalformed, Group)
	}
	if !sec.HasKey(keyName) {
		return nil, fmt.Errorf("%w: missing %s key", ErrMalformed, keyName)
	}

	rec := &Record{
		ID:          filepath.Base(path),
		Path:        path,
		Name:        s.localized(sec, keyName),
		Comment:     s.localized(sec, keyComment),
		Icon:        ParseIcon(sec.Key(keyIcon).String()),
		Exec:        sec.Key(keyExec).String(),
		Accelerator: strings.TrimSpace(sec.Key(keyAccelerator).String()),
		Active:      sec.Key(keyActive).MustBool(true),
	}
	return rec, nil
}

// localized picks key[locale] matching the scanner locale, falling back to
// the plain key.
func (s *Scanner) localized(sec *ini.Section, key string) string {
	plain := sec.Key(key).String()
	if !s.hasTag {
		return plain
	}

	prefix := key + "["
	var tags []language.Tag
	var values []string
	for _, k := range sec.Keys() {
		name := k.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		tag, ok := parseLocale(name[len(prefix) : len(name)-1])
		if !ok {
			continue
		}
		tags = append(tags, tag)
		values = append(values, k.String())
	}
	if len(tags) == 0 {
		return plain
	}

	_, idx, conf := language.NewMatcher(tags).Match(s.locale)
	if conf == language.No || idx < 0 || idx >= len(values) {
		return plain
	}
	return values[idx]
}

// parseLocale converts "de_DE.UTF-8@euro" style strings into a language tag.
func parseLocale(locale string) (language.Tag, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
