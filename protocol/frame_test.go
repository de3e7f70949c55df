package protocol

import (
	"bytes"
	"testing"

	"exio-go/errcode"
)

func TestDecode_Layouts(t *testing.T) {
	cases := []struct {
		name  string
		frame []byte
		want  Command
	}{
		{"init", []byte{0xE0, 24, 0x34, 0x12}, Init{PinCount: 24, FirstVpin: 0x1234}},
		{"analog_map", []byte{0xE8}, InitAnalogMap{}},
		{"pullup", []byte{0xE2, 5, 1}, SetPullup{Pin: 5, Pullup: true}},
		{"pullup_nonzero_flag", []byte{0xE2, 5, 7}, SetPullup{Pin: 5, Pullup: true}},
		{"read_analogue", []byte{0xE4}, ReadAnalogue{}},
		{"write_digital", []byte{0xE5, 3, 0}, WriteDigital{Pin: 3}},
		{"read_digital", []byte{0xE6}, ReadDigital{}},
		{"version", []byte{0xE3}, GetVersion{}},
		{"enable_analogue", []byte{0xE7, 26}, EnableAnalogue{Pin: 26}},
		{"write_analogue", []byte{0xEA, 9, 0xE8, 0x03, 2, 0x0A, 0x00},
			WriteAnalogue{Pin: 9, Value: 1000, Profile: 2, Duration: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.frame)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestDecode_WrongLengthIsMalformed(t *testing.T) {
	frames := [][]byte{
		{0xE0, 24, 0},
		{0xE5, 3},
		{0xE5, 3, 1, 0},
		{0xE6, 0},
		{0xEA, 1, 2, 3, 4, 5},
		{},
	}
	for _, f := range frames {
		_, err := Decode(f)
		if errcode.Of(err) != errcode.MalformedFrame {
			t.Fatalf("frame % X: want malformed_frame, got %v", f, err)
		}
	}
}

func TestDecode_UnknownOpcode(t *testing.T) {
	_, err := Decode([]byte{0x42, 1, 2})
	if errcode.Of(err) != errcode.UnknownOpcode {
		t.Fatalf("want unknown_opcode, got %v", err)
	}
	if HasStatusResponse(0x42) {
		t.Fatal("unknown opcode must not have a status response")
	}
}

func TestAppend_MatchesWireLayout(t *testing.T) {
	got := WriteAnalogue{Pin: 9, Value: 1000, Profile: 2, Duration: 10}.Append(nil)
	want := []byte{0xEA, 9, 0xE8, 0x03, 2, 0x0A, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X want % X", got, want)
	}
	got = Init{PinCount: 24, FirstVpin: 800}.Append(nil)
	if !bytes.Equal(got, []byte{0xE0, 24, 0x20, 0x03}) {
		t.Fatalf("init frame % X", got)
	}
}
