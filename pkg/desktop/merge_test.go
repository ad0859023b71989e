package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFlags(t *testing.T) {
	wayland := "--ozone-platform=wayland"

	tests := []struct {
		name    string
		command string
		flags   []string
		want    string
	}{
		{
			name:    "inserts after executable",
			command: "code --foo bar",
			flags:   []string{wayland},
			want:    "code --ozone-platform=wayland --foo bar",
		},
		{
			name:    "already present",
			command: "code --ozone-platform=wayland --foo bar",
			flags:   []string{wayland},
			want:    "code --ozone-platform=wayland --foo bar",
		},
		{
			name:    "keeps flag order",
			command: "/usr/bin/brave-browser-stable %U",
			flags:   []string{"--enable-features=UseOzonePlatform", wayland},
			want:    "/usr/bin/brave-browser-stable --enable-features=UseOzonePlatform --ozone-platform=wayland %U",
		},
		{
			name:    "only missing flags inserted",
			command: "code --ozone-platform=wayland --new-window %F",
			flags:   []string{"--enable-features=UseOzonePlatform", wayland},
			want:    "code --enable-features=UseOzonePlatform --ozone-platform=wayland --new-window %F",
		},
		{
			name:    "substring containment counts as present",
			command: "code --enable-features=UseOzonePlatform,WaylandWindowDecorations",
			flags:   []string{"--enable-features=UseOzonePlatform"},
			want:    "code --enable-features=UseOzonePlatform,WaylandWindowDecorations",
		},
		{
			name:    "bare executable",
			command: "code",
			flags:   []string{wayland},
			want:    "code --ozone-platform=wayland",
		},
		{
			name:    "no flags normalizes spacing only",
			command: "code   --foo\tbar",
			flags:   nil,
			want:    "code --foo bar",
		},
		{
			name:    "duplicate flags in input inserted once",
			command: "code",
			flags:   []string{wayland, wayland},
			want:    "code --ozone-platform=wayland",
		},
		{
			name:    "placeholders stay literal",
			command: "env FOO=$BAR code %U",
			flags:   []string{"--x"},
			want:    "env --x FOO=$BAR code %U",
		},
		{
			name:    "empty command",
			command: "",
			flags:   []string{wayland},
			want:    "",
		},
		{
			name:    "whitespace command",
			command: "   ",
			flags:   []string{wayland},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeFlags(tt.command, tt.flags))
		})
	}
}

func TestMergeFlags_Idempotent(t *testing.T) {
	commands := []string{
		"code --foo bar",
		"/opt/brave.com/brave/brave-browser --incognito",
		"code --ozone-platform=wayland",
		"electron %U",
		"",
		" \t ",
	}
	flagLists := [][]string{
		nil,
		{"--ozone-platform=wayland"},
		{"--enable-features=UseOzonePlatform", "--ozone-platform=wayland"},
		{"--ozone-platform", "--ozone-platform=wayland"},
		{"--gtk-version=4", "--gtk-version=4"},
	}

	for _, c := range commands {
		for _, flags := range flagLists {
			once := MergeFlags(c, flags)
			twice := MergeFlags(once, flags)
			assert.Equal(t, once, twice, "command %q flags %v", c, flags)
		}
	}
}

func TestMergeFlags_SubstringSkipKeepsArrangement(t *testing.T) {
	c := "code --new-window --ozone-platform=wayland %F"
	for _, f := range []string{"--ozone-platform=wayland", "--new-window", "%F", "code"} {
		assert.Equal(t, c, MergeFlags(c, []string{f}), "flag %q", f)
	}
}

func TestMergeFlags_EmptyCommandNeverFabricated(t *testing.T) {
	for _, c := range []string{"", "   ", "\t\n"} {
		assert.Empty(t, MergeFlags(c, []string{"--a", "--b"}))
	}
}
