package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelchunks/internal/delscript"
)

// JSONLZstdWriter appends JSON lines to hourly zstd-compressed segments named
// <prefix>-YYYY-MM-DD-HH-NNN.jsonl.zst under baseDir. Each writer opens a
// fresh segment per hour and every record is a complete zstd frame, so a
// crash can at worst tear the record being written.
type JSONLZstdWriter struct {
	baseDir string
	prefix  string
	now     func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
}

// maxSegments bounds the writers that may open the same hour.
const maxSegments = 1000

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	w.enc.Reset(w.f)
	if _, err := w.enc.Write(b); err != nil {
		return err
	}
	return w.enc.Close()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}
	f, err := w.openSegment(hour)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.curHour = hour
	return nil
}

// openSegment creates the first unused segment for hour. Segments are never
// appended to, so a frame torn by an earlier process stays at the end of its
// own file.
func (w *JSONLZstdWriter) openSegment(hour string) (*os.File, error) {
	for seq := 0; seq < maxSegments; seq++ {
		f, err := os.OpenFile(w.segmentPath(hour, seq), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: all %d segments for hour %s are taken", w.prefix, maxSegments, hour)
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err error
	w.enc = nil
	if w.f != nil {
		err = w.f.Close()
		w.f = nil
	}
	w.curHour = ""
	return err
}

func (w *JSONLZstdWriter) segmentPath(hour string, seq int) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s-%03d.jsonl.zst", w.prefix, hour, seq))
}

const auditPrefix = "delchunks"

// AuditLogger records every generated deletion script (compressed).
type AuditLogger struct{ w *JSONLZstdWriter }

func NewAuditLogger(dir string) *AuditLogger {
	return &AuditLogger{w: NewJSONLZstdWriter(dir, auditPrefix)}
}

func (l *AuditLogger) RecordScript(r delscript.Record) error { return l.w.Write(r) }
func (l *AuditLogger) Close() error                          { return l.w.Close() }

// ReadAudit returns every record under dir in file order, oldest hour first.
// A missing directory yields no records. A damaged segment does not hide the
// others: the records decoded before the damage are kept, and the returned
// error names each damaged file alongside the full record list.
func ReadAudit(dir string) ([]delscript.Record, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, auditPrefix+"-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var (
		out  []delscript.Record
		errs []error
	)
	for _, name := range names {
		recs, err := readAuditFile(filepath.Join(dir, name))
		out = append(out, recs...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

func readAuditFile(path string) ([]delscript.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []delscript.Record
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		var r delscript.Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return out, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}
