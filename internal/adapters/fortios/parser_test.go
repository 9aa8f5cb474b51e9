package fortios

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	apperrors "github.com/netcfgtools/fgt-dup-detector/internal/errors"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
)

func newTestParser(t *testing.T, ignored ...string) *Parser {
	t.Helper()
	if ignored == nil {
		ignored = []string{"uuid"}
	}
	return NewParser(Config{IgnoredAttributes: ignored}, log.NewNop())
}

func recordByName(t *testing.T, records []domain.ObjectRecord, typ domain.ObjectType, name string) domain.ObjectRecord {
	t.Helper()
	for _, rec := range records {
		if rec.Type == typ && rec.Name == name {
			return rec
		}
	}
	t.Fatalf("record %s %q not found", typ, name)
	return domain.ObjectRecord{}
}

func TestParser_SingleVDOM(t *testing.T) {
	p := newTestParser(t)
	fp := filepath.Join("testdata", "single_vdom_a.conf")

	result, err := p.Parse(context.Background(), fp)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Records, 6)

	t.Run("implicit root partition", func(t *testing.T) {
		for _, rec := range result.Records {
			assert.Equal(t, DefaultPartition, rec.Source.Partition)
			assert.Equal(t, fp, rec.Source.File)
		}
	})

	t.Run("attribute keys in source order, uuid ignored", func(t *testing.T) {
		web := recordByName(t, result.Records, domain.TypeAddress, "WEB1")
		assert.Equal(t, []string{"subnet", "comment", "color"}, web.Attributes.Keys())
		_, hasUUID := web.Attributes.Get("uuid")
		assert.False(t, hasUUID)
	})

	t.Run("comment collapsed to single spacing", func(t *testing.T) {
		web := recordByName(t, result.Records, domain.TypeAddress, "WEB1")
		comment, ok := web.Attributes.Get("comment")
		require.True(t, ok)
		assert.Equal(t, domain.ScalarValue("web tier"), comment)
	})

	t.Run("multi-token values parse as ordered lists", func(t *testing.T) {
		sg := recordByName(t, result.Records, domain.TypeServiceGroup, "SG1")
		member, ok := sg.Attributes.Get("member")
		require.True(t, ok)
		assert.Equal(t, domain.ListValue("HTTP", "HTTPS"), member)

		web := recordByName(t, result.Records, domain.TypeAddress, "WEB1")
		subnet, _ := web.Attributes.Get("subnet")
		assert.Equal(t, domain.ListValue("10.0.0.0", "255.255.255.0"), subnet)
	})

	t.Run("unrecognized sections are counted", func(t *testing.T) {
		assert.Equal(t, 1, result.SkippedSections["system global"])
	})
}

func TestParser_MultiVDOM(t *testing.T) {
	p := newTestParser(t)
	fp := filepath.Join("testdata", "multi_vdom.conf")

	result, err := p.Parse(context.Background(), fp)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Records, 3)

	partitions := make(map[string][]string)
	for _, rec := range result.Records {
		partitions[rec.Source.Partition] = append(partitions[rec.Source.Partition], rec.Name)
	}
	assert.Equal(t, []string{"SHARED"}, partitions["root"])
	assert.Equal(t, []string{"SHARED", "G-INTERNAL"}, partitions["dmz"])

	t.Run("append accumulates into the list", func(t *testing.T) {
		grp := recordByName(t, result.Records, domain.TypeAddressGroup, "G-INTERNAL")
		member, ok := grp.Attributes.Get("member")
		require.True(t, ok)
		assert.Equal(t, []string{"SHARED", "RFC1918"}, member.Flatten())
	})

	t.Run("vdom-level tables counted once per occurrence", func(t *testing.T) {
		assert.Equal(t, 1, result.SkippedSections["global"])
		assert.Equal(t, 1, result.SkippedSections["system object-tagging"])
	})
}

func TestParser_MalformedBlocks(t *testing.T) {
	p := newTestParser(t)
	fp := filepath.Join("testdata", "malformed.conf")

	result, err := p.Parse(context.Background(), fp)
	require.NoError(t, err)

	// The block missing next, the stray end, and the block open at EOF
	// each warn; the well-formed block in between still parses.
	require.Len(t, result.Warnings, 3)
	assert.Contains(t, result.Warnings[0].Message, "BROKEN")
	assert.Contains(t, result.Warnings[1].Message, "end without a matching config")
	assert.Contains(t, result.Warnings[2].Message, "EOFBLOCK")
	assert.Equal(t, 5, result.Warnings[1].Line)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "GOOD", result.Records[0].Name)
	assert.Equal(t, domain.TypeService, result.Records[0].Type)
}

func TestParser_RepeatedSetAccumulates(t *testing.T) {
	p := newTestParser(t)
	raw := []byte(`config firewall addrgrp
    edit "G1"
        set member "A"
        set member "B"
    next
end
`)
	result := p.parseBytes("inline.conf", raw)
	require.Empty(t, result.Warnings)
	require.Len(t, result.Records, 1)

	member, ok := result.Records[0].Attributes.Get("member")
	require.True(t, ok)
	assert.Equal(t, domain.ValueList, member.Kind)
	assert.Equal(t, []string{"A", "B"}, member.Items)
}

func TestParser_InvalidUTF8Tolerated(t *testing.T) {
	p := newTestParser(t)
	raw := []byte("config firewall address\n    edit \"A1\"\n        set comment \"caf\xff\"\n    next\nend\n")

	result := p.parseBytes("latin1.conf", raw)
	require.Empty(t, result.Warnings)
	require.Len(t, result.Records, 1)
	comment, ok := result.Records[0].Attributes.Get("comment")
	require.True(t, ok)
	assert.Contains(t, comment.Scalar, "caf")
}

func TestParser_UnreadableFile(t *testing.T) {
	p := newTestParser(t)

	result, err := p.Parse(context.Background(), filepath.Join("testdata", "does-not-exist.conf"))
	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInputReadError, appErr.Code)
}

func TestSplitTokens(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "set color 3", []string{"set", "color", "3"}},
		{"quoted single", `edit "WEB SERVER 1"`, []string{"edit", "WEB SERVER 1"}},
		{"quoted list", `set member "HTTP" "HTTPS"`, []string{"set", "member", "HTTP", "HTTPS"}},
		{"escaped quote", `set comment "say \"hi\""`, []string{"set", "comment", `say "hi"`}},
		{"empty quoted value", `set comment ""`, []string{"set", "comment", ""}},
		{"tabs", "set\tsubnet\t10.0.0.0\t255.255.255.0", []string{"set", "subnet", "10.0.0.0", "255.255.255.0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitTokens(tc.in))
		})
	}
}
