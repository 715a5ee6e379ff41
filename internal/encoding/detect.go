package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names an input encoding recognized by Detect.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8-BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	EUCKR       Charset = "EUC-KR"
	Windows1252 Charset = "windows-1252"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8BOM},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// Detect guesses the charset of a leading sample. A byte-order mark wins,
// then valid UTF-8, then chardet; anything unrecognized is taken as EUC-KR,
// the legacy encoding of Korean spreadsheet exports.
func Detect(sample []byte) Charset {
	for _, b := range boms {
		if bytes.HasPrefix(sample, b.prefix) {
			return b.charset
		}
	}

	if utf8.Valid(sample) {
		return UTF8
	}

	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return EUCKR
	}

	switch res.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-1", "windows-1252":
		return Windows1252
	}

	return EUCKR
}

func decoder(c Charset) xenc.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Windows1252:
		return charmap.Windows1252
	case EUCKR:
		return korean.EUCKR
	}

	return nil
}

// NewUTF8Reader wraps an uploaded backup or CSV so it reads as UTF-8,
// dropping a UTF-8 byte-order mark.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek input: %w", err)
	}

	charset := Detect(sample)

	switch charset {
	case UTF8:
		return br, nil
	case UTF8BOM:
		_, _ = br.Discard(3)
		return br, nil
	}

	slog.Debug("decoding upload", "charset", charset)

	return transform.NewReader(br, decoder(charset).NewDecoder()), nil
}
