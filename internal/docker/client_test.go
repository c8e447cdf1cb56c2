// internal/docker/client_test.go
package docker

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
)

func TestRemoteLabel(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"unix:///var/run/docker.sock", ""},
		{"npipe:////./pipe/docker_engine", ""},
		{"tcp://build-host:2375", "build-host"},
		{"tcp://10.0.0.5:2376", "10.0.0.5"},
		{"ssh://user@box", "user@box"},
	}

	for _, tt := range tests {
		c := &Client{host: tt.host}
		if got := c.RemoteLabel(); got != tt.want {
			t.Errorf("RemoteLabel(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

// muxFrame builds one daemon log frame: stream byte, three zeros, big-endian
// payload length, payload.
func muxFrame(stream byte, payload string) []byte {
	head := []byte{stream, 0, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(head[4:], uint32(len(payload)))
	return append(head, payload...)
}

func scanAll(t *testing.T, data []byte) []string {
	t.Helper()
	var lines []string
	scanner := newLogScanner(demuxLogStream(bytes.NewReader(data)))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	return lines
}

func TestDemuxLogStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{
			name: "stdout frames",
			data: append(muxFrame(1, "hello world\n"), muxFrame(1, "second\n")...),
			want: []string{"hello world", "second"},
		},
		{
			name: "stderr interleaved",
			data: append(muxFrame(1, "out\n"), muxFrame(2, "err\n")...),
			want: []string{"out", "err"},
		},
		{
			name: "line spanning frames",
			data: append(muxFrame(1, "first ha"), muxFrame(1, "lf joined\n")...),
			want: []string{"first half joined"},
		},
		{
			// A 10-byte payload puts 0x0A in the length field; the header
			// must still parse as a header, not split at that byte.
			name: "newline byte inside length field",
			data: append(muxFrame(1, "0123456789"), muxFrame(1, "\nsecond\n")...),
			want: []string{"0123456789", "second"},
		},
		{
			name: "tty stream passes through",
			data: []byte("plain line\nanother\n"),
			want: []string{"plain line", "another"},
		},
		{
			name: "short stream passes through",
			data: []byte("hi\n"),
			want: []string{"hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanAll(t, tt.data); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}
