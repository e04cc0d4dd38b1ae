package subtitles

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:02,500\nHello there.\n\n2\n00:00:03,000 --> 00:00:04,000\nGeneral Kenobi!\n"

const sampleASS = `[Script Info]
Title: Sample
ScriptType: v4.00+

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:05.00,0:00:06.50,Default,,0,0,0,,{\i1}Second{\i0} line, with comma
Dialogue: 0,0:01:23.45,0:01:25.00,Default,,0,0,0,,First\Nsplit
Dialogue: 0,0:00:07.00,0:00:08.00,Sign,,0,0,0,,{\p1}m 0 0 l 100 0 100 100 0 100{\p0}
Dialogue: 0,0:00:09.00,0:00:10.00,Default,,0,0,0,,..
Dialogue: 0,0:01:23.45,0:01:25.00,Default,,0,0,0,,First\Nsplit
`

const sampleTTML = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml">
  <body><div>
    <p begin="12.5s" end="14s">Tom &amp; Jerry<br/>are   back</p>
    <p begin="00:00:01.250" end="00:00:02:12">First &lt;cue&gt;</p>
  </div></body>
</tt>
`

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"srt", []byte(sampleSRT), FormatSRT},
		{"srt with crlf", []byte("1\r\n00:00:01,000 --> 00:00:02,000\r\nHi\r\n"), FormatSRT},
		{"ass", []byte(sampleASS), FormatASS},
		{"ass vector only", []byte("[Script Info]\nDialogue: 0,0:00:01.00,0:00:02.00,Sign,,0,0,0,,{\\p1}m 0 0 l 10 10{\\p0}\nDialogue: 0,0:00:03.00,0:00:04.00,Sign,,0,0,0,,--\n"), FormatASSVectorOnly},
		{"ttml", []byte(sampleTTML), FormatTTML},
		{"generic xml", []byte(`<subs><p start="1s" end="2s">hi</p></subs>`), FormatXML},
		{"pgs", append([]byte("PG"), 0x00, 0x01, 0x02, 0x16), FormatBitmap},
		{"vobsub pack", []byte{0x00, 0x00, 0x01, 0xBA, 0x44}, FormatBitmap},
		{"vobsub idx", []byte("# VobSub index file, v7 (do not modify this line!)\nsize: 720x480\n"), FormatBitmap},
		{"bare vector drawing", []byte("m 0 0 l 100 0 100 100 0 100\n"), FormatVector},
		{"plain text", []byte("just some words\nwithout structure\n"), FormatUnknownText},
		{"empty", nil, FormatUnknownText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Fatalf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectDecodesUTF16(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := encoder.Bytes([]byte(sampleSRT))
	if err != nil {
		t.Fatal(err)
	}
	if got := Detect(data); got != FormatSRT {
		t.Fatalf("Detect(utf-16) = %v, want srt", got)
	}
	entries, err := Convert(FormatSRT, data)
	if err != nil {
		t.Fatal(err)
	}
	if entries[1].Text != "General Kenobi!" {
		t.Fatalf("text = %q", entries[1].Text)
	}
}

func TestDecodeLegacyCharset(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().String("1\n00:00:01,000 --> 00:00:02,000\nCafé déjà vu\n")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := ParseSRT([]byte(latin1))
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Text != "Café déjà vu" {
		t.Fatalf("text = %q", entries[0].Text)
	}
}

func TestFormatConvertible(t *testing.T) {
	for _, f := range []Format{FormatSRT, FormatASS, FormatTTML, FormatXML} {
		if !f.Convertible() {
			t.Errorf("%v should be convertible", f)
		}
	}
	for _, f := range []Format{FormatBitmap, FormatVector, FormatASSVectorOnly, FormatUnknownText} {
		if f.Convertible() {
			t.Errorf("%v should not be convertible", f)
		}
	}
}
