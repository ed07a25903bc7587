package sniffer

import (
	"errors"
	"net/http"
	"testing"
)

var (
	jpegHead = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	pngHead  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}
	gifHead  = []byte("GIF89a\x01\x00")
)

func TestDetectHead_AllowedFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		head []byte
		want Result
	}{
		{"jpeg", jpegHead, Result{Type: TypeJPEG, MIME: "image/jpeg"}},
		{"png", pngHead, Result{Type: TypePNG, MIME: "image/png"}},
		{"gif87a", []byte("GIF87a\x01\x00"), Result{Type: TypeGIF, MIME: "image/gif"}},
		{"gif89a", gifHead, Result{Type: TypeGIF, MIME: "image/gif"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectHead(tc.head)
			if err != nil {
				t.Fatalf("DetectHead error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestDetectHead_Rejected(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		head []byte
	}{
		{"empty", nil},
		{"text", []byte("hello world")},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBP")},
		{"pdf", []byte("%PDF-1.4")},
		{"svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\">")},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DetectHead(tc.head); !errors.Is(err, ErrUnknownType) {
				t.Fatalf("expected ErrUnknownType, got %v", err)
			}
		})
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set("Content-Type", "image/png; charset=binary")
	if got := MimeTypeFromHTTP(header); got != "image/png" {
		t.Fatalf("got %q want image/png", got)
	}

	if got := MimeTypeFromHTTP(http.Header{}); got != "" {
		t.Fatalf("expected empty mime for missing header, got %q", got)
	}
}
