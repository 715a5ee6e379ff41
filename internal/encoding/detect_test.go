package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/ledgerboard/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "year,month,kind,item,amount\n2025,3,expense,급여,1000000\n"
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("매출,매입\n")...)
	assert.Equal(t, "매출,매입\n", readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.Bytes([]byte("법인카드 사용액\n"))
	require.NoError(t, err)

	assert.Equal(t, "법인카드 사용액\n", readAll(t, input))
}

func TestNewUTF8Reader_EUCKR(t *testing.T) {
	want := "2025,3,expense,전자세금계산서,120000\n2025,3,expense,퇴직금,50000\n2025,3,revenue,종합해사,990000\n"

	input, err := korean.EUCKR.NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)

	assert.Equal(t, want, readAll(t, input))
}

func TestNewUTF8Reader_Short(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}

func TestDetect(t *testing.T) {
	type testCase struct {
		name  string
		input func(t *testing.T) []byte
		want  encoding.Charset
	}

	eucKR := func(t *testing.T) []byte {
		b, err := korean.EUCKR.NewEncoder().Bytes([]byte("연도,월,구분,항목,금액\n2025,3,매출,종합해사,990000\n"))
		require.NoError(t, err)

		return b
	}

	tests := []testCase{
		{name: "ASCII", input: func(*testing.T) []byte { return []byte("year,month\n") }, want: encoding.UTF8},
		{name: "Empty", input: func(*testing.T) []byte { return nil }, want: encoding.UTF8},
		{name: "BOM", input: func(*testing.T) []byte { return []byte{0xEF, 0xBB, 0xBF, 'a'} }, want: encoding.UTF8BOM},
		{name: "UTF16LE", input: func(*testing.T) []byte { return []byte{0xFF, 0xFE, 'a', 0} }, want: encoding.UTF16LE},
		{name: "UTF16BE", input: func(*testing.T) []byte { return []byte{0xFE, 0xFF, 0, 'a'} }, want: encoding.UTF16BE},
		{name: "EUCKR", input: eucKR, want: encoding.EUCKR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encoding.Detect(tt.input(t)))
		})
	}
}
