package source

import (
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/vnykmshr/seqflow/internal/testutil"
	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

func drainLines(t *testing.T, c cursor.Cursor[string]) []string {
	t.Helper()
	var out []string
	for {
		ok, err := c.HasNext()
		testutil.AssertNoError(t, err)
		if !ok {
			return out
		}
		v, err := c.Next()
		testutil.AssertNoError(t, err)
		out = append(out, v)
	}
}

func TestLines(t *testing.T) {
	c := Lines(strings.NewReader("alpha\nbeta\ngamma"))
	testutil.AssertSliceEqual(t, drainLines(t, c), []string{"alpha", "beta", "gamma"})
}

func TestLinesCRLF(t *testing.T) {
	c := Lines(strings.NewReader("a\r\nb\r\n"))
	testutil.AssertSliceEqual(t, drainLines(t, c), []string{"a", "b"})
}

func TestLinesEmptyInput(t *testing.T) {
	c := Lines(strings.NewReader(""))
	ok, err := c.HasNext()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)

	_, err = c.Next()
	testutil.AssertErrorIs(t, err, cursor.ErrNoSuchElement)
}

func TestLinesHasNextIsIdempotent(t *testing.T) {
	c := Lines(strings.NewReader("only"))
	for i := 0; i < 3; i++ {
		ok, err := c.HasNext()
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, ok)
	}
	v, err := c.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "only")
}

func TestLinesEncodingOverride(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	encoded, err := enc.NewEncoder().String("héllo\nwörld")
	testutil.AssertNoError(t, err)

	c := Lines(strings.NewReader(encoded), WithEncoding(enc))
	testutil.AssertSliceEqual(t, drainLines(t, c), []string{"héllo", "wörld"})
}

func TestLinesReadError(t *testing.T) {
	r := testutil.NewErrReader([]byte("partial"), nil)
	c := Lines(r)

	ok, err := c.HasNext()
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	_, err = c.Next()
	testutil.AssertNoError(t, err)

	_, err = c.HasNext()
	testutil.AssertError(t, err)
}

type closableReader struct {
	io.Reader
	closed int
}

func (r *closableReader) Close() error {
	r.closed++
	return nil
}

func TestLinesCloseForwardsToReader(t *testing.T) {
	r := &closableReader{Reader: strings.NewReader("a\nb")}
	c := Lines(r)

	testutil.AssertNoError(t, cursor.Close(c))
	testutil.AssertEqual(t, r.closed, 1)

	ok, err := c.HasNext()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)
}
