package fefe

import (
	"encoding/binary"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add(buildFrame(0x14, CmdQueryResponse, testPayload))
	f.Add(BuildBind())
	f.Add(BuildQuery())
	f.Add([]byte{})
	f.Add([]byte{0xFE, 0xFE})
	f.Add(make([]byte, MinFrameSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		report, err := Decode(data)

		if err != nil {
			if report != nil {
				t.Fatal("non-nil report alongside an error")
			}
			return
		}

		// Decode only accepts frames that pass every wire check.
		if len(data) < MinFrameSize {
			t.Fatalf("accepted %d-byte frame", len(data))
		}
		if data[0] != SyncByte || data[1] != SyncByte {
			t.Fatalf("accepted frame with sync % X", data[:2])
		}
		if data[3] != CmdQueryResponse {
			t.Fatalf("accepted command 0x%02X", data[3])
		}
		trailer := binary.BigEndian.Uint16(data[len(data)-2:])
		if trailer != Checksum(data[:len(data)-2]) {
			t.Fatal("accepted frame with bad checksum")
		}
		if report == nil {
			t.Fatal("nil report without an error")
		}
	})
}

func FuzzScanner(f *testing.F) {
	frame := buildFrame(0x14, CmdQueryResponse, testPayload)

	f.Add(frame, 1)
	f.Add(append([]byte{0x00, 0xFE, 0x13}, frame...), 3)
	f.Add([]byte{0xFE, 0xFE, 0xFE, 0xFE}, 2)

	f.Fuzz(func(t *testing.T, data []byte, chunk int) {
		if chunk < 1 {
			chunk = 1
		}

		// Every frame the scanner emits must decode, no matter how the
		// input is split.
		var s Scanner
		for off := 0; off < len(data); off += chunk {
			end := off + chunk
			if end > len(data) {
				end = len(data)
			}
			for _, emitted := range s.Scan(data[off:end]) {
				if _, err := Decode(emitted); err != nil {
					t.Fatalf("scanner emitted undecodable frame % X: %v", emitted, err)
				}
			}
		}
	})
}
