package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "-" {
		t.Fatalf("RequestID(empty) = %q, want -", got)
	}

	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("RequestID = %q, want abc", got)
	}
}

func TestTimeLogsOperationAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "r-1")

	func() (err error) {
		defer Time(ctx, "geocode.cache.GetMany")(&err)
		return errors.New("boom")
	}()

	line := buf.String()
	for _, want := range []string{"req_id=r-1", "op=geocode.cache.GetMany", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}

	buf.Reset()
	func() (err error) {
		defer Time(ctx, "ok.op")(&err)
		return nil
	}()
	if strings.Contains(buf.String(), "err=") {
		t.Errorf("successful op logged an error: %q", buf.String())
	}
}
