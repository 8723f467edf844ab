package multipart

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/vault_lite/internal/models"
)

func frame(boundary, filename string, payload []byte) []byte {
	var b bytes.Buffer
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString(`Content-Disposition: form-data; name="file"; filename="` + filename + `"` + "\r\n")
	b.WriteString("Content-Type: application/octet-stream\r\n\r\n")
	b.Write(payload)
	b.WriteString("\r\n--" + boundary + "--")
	return b.Bytes()
}

func TestBoundary(t *testing.T) {
	b, err := Boundary("multipart/form-data; boundary=----WebKitFormBoundaryX")
	require.NoError(t, err)
	assert.Equal(t, "----WebKitFormBoundaryX", b)

	b, err = Boundary(`multipart/form-data; boundary="quoted b"`)
	require.NoError(t, err)
	assert.Equal(t, "quoted b", b)

	for _, ct := range []string{"", "application/json", "multipart/form-data", "text/plain; boundary=x"} {
		_, err = Boundary(ct)
		assert.ErrorIs(t, err, models.ErrMalformedRequest, ct)
	}
}

func TestDecodeSimple(t *testing.T) {
	payload := []byte("hello, vault")
	part, err := Decode(frame("B", "a.txt", payload), "B")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", part.Filename)
	assert.Equal(t, payload, part.Payload)
}

func TestDecodeBinarySafe(t *testing.T) {
	// CR, LF, нули и байты вне UTF-8 не должны ломать разбор.
	payload := []byte{0x00, 0xff, '\r', '\n', 0xfe, 0x80, '\r', 0x00, '-', '-'}
	part, err := Decode(frame("xyz", "blob.bin", payload), "xyz")
	require.NoError(t, err)
	assert.Equal(t, payload, part.Payload)
}

func TestDecodePayloadWithHeaderTerminator(t *testing.T) {
	// Первый CRLF CRLF заканчивает заголовки, следующие относятся к файлу.
	payload := []byte("line1\r\n\r\nline2")
	part, err := Decode(frame("B", "t.txt", payload), "B")
	require.NoError(t, err)
	assert.Equal(t, payload, part.Payload)
}

func TestDecodeLastBoundaryWins(t *testing.T) {
	// Второй файл не отделяется: всё до последней границы считается первым файлом.
	var b bytes.Buffer
	b.WriteString("--B\r\nContent-Disposition: form-data; name=\"f\"; filename=\"one.txt\"\r\n\r\n")
	b.WriteString("first")
	b.WriteString("\r\n--B\r\nContent-Disposition: form-data; name=\"g\"; filename=\"two.txt\"\r\n\r\n")
	b.WriteString("second")
	b.WriteString("\r\n--B--\r\n")

	part, err := Decode(b.Bytes(), "B")
	require.NoError(t, err)
	assert.Equal(t, "one.txt", part.Filename)
	assert.Equal(t,
		"first\r\n--B\r\nContent-Disposition: form-data; name=\"g\"; filename=\"two.txt\"\r\n\r\nsecond",
		string(part.Payload))
}

func TestDecodeMissingFilename(t *testing.T) {
	body := []byte("--B\r\nContent-Disposition: form-data; name=\"f\"\r\n\r\ndata\r\n--B--")
	part, err := Decode(body, "B")
	require.NoError(t, err)
	assert.Equal(t, "", part.Filename)
	assert.Equal(t, "data", string(part.Payload))
}

func TestDecodeEmptyPayload(t *testing.T) {
	part, err := Decode(frame("B", "empty.txt", nil), "B")
	require.NoError(t, err)
	assert.Empty(t, part.Payload)
}

func TestDecodeMalformed(t *testing.T) {
	tests := map[string][]byte{
		"no header terminator": []byte("--B\r\nContent-Disposition: form-data; filename=\"a\"\r\ndata--B--"),
		"no boundary":          []byte("--X\r\nContent-Disposition: form-data\r\n\r\ndata\r\n--X--"),
		"boundary before data": []byte("--B\r\nContent-Disposition: form-data\r\n\r\n"),
		"empty body":           nil,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(body, "B")
			assert.ErrorIs(t, err, models.ErrMalformedRequest)
		})
	}
}

func TestDecodeStdlibWriter(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	payload := bytes.Repeat([]byte{0xA1, 0x0D, 0x0A, 0xB2}, 4096)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	boundary, err := Boundary(mw.FormDataContentType())
	require.NoError(t, err)

	part, err := Decode(buf.Bytes(), boundary)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", part.Filename)
	assert.Equal(t, payload, part.Payload)
}

func TestStorageName(t *testing.T) {
	a := StorageName("x.bin")
	b := StorageName("x.bin")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-x.bin"), a)

	assert.True(t, strings.HasSuffix(StorageName(`C:\Users\me\photo.jpg`), "-photo.jpg"))
	assert.True(t, strings.HasSuffix(StorageName("../../etc/passwd"), "-passwd"))
	assert.NotContains(t, StorageName(".."), "..")

	assert.True(t, strings.HasSuffix(StorageName("a\x00b\r\n.txt"), "-ab.txt"))
	assert.Len(t, StorageName("\x00"), 36)
}
