package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func observedLogger(level zap.AtomicLevel) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 28.0, cfg.LineSpacing)
	assert.Equal(t, []float64{3.7, 3.5, 2.8, 2.6}, []float64{cfg.MarginTop, cfg.MarginBottom, cfg.MarginLeft, cfg.MarginRight})
	assert.Equal(t, "黑体", cfg.H1Font)
	assert.Equal(t, "楷体_GB2312", cfg.H2Font)
	assert.Equal(t, "仿宋_GB2312", cfg.BodyFont)
	assert.Equal(t, OutlineLevel(8), cfg.TableCaptionOutlineLevel)
	assert.Equal(t, OutlineLevel(6), cfg.FigureCaptionOutlineLevel)
	assert.True(t, cfg.H2Bold)
	assert.False(t, cfg.H1Bold)
	assert.True(t, cfg.SetOutline)
	assert.Equal(t, "Times New Roman", cfg.BodyLatinFont())

	h3, ok := cfg.HeadingStyle(3)
	require.True(t, ok)
	assert.Equal(t, TextStyle{Font: "宋体", Size: 12, SpaceBefore: 24, SpaceAfter: 24}, h3)

	_, ok = cfg.HeadingStyle(4)
	assert.False(t, ok)
}

func TestParseOutlineLevel(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    OutlineLevel
		wantErr bool
	}{
		{name: "integer", value: 8, want: 8},
		{name: "json number", value: 6.0, want: 6},
		{name: "numeric string", value: "3", want: 3},
		{name: "none sentinel", value: "none", want: OutlineNone},
		{name: "chinese none", value: "无", want: OutlineNone},
		{name: "empty string", value: "", want: OutlineNone},
		{name: "null", value: nil, want: OutlineNone},
		{name: "zero", value: 0, wantErr: true},
		{name: "too large", value: 10, wantErr: true},
		{name: "garbage", value: "eight", wantErr: true},
		{name: "fractional number", value: 8.7, wantErr: true},
		{name: "fractional string", value: "8.7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutlineLevel(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutlineLevelString(t *testing.T) {
	assert.Equal(t, "none", OutlineNone.String())
	assert.Equal(t, "8", OutlineLevel(8).String())
	assert.Equal(t, "none", OutlineLevel(12).String())
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		log, logs := observedLogger(zap.NewAtomicLevelAt(zap.WarnLevel))
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"), nil, log)
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("valid values are read", func(t *testing.T) {
		path := writeFile(t, "config.json", `{
			"h1_font": "方正黑体_GBK",
			"h1_size": 22,
			"h2_bold": false,
			"margin_left": 3,
			"table_caption_outline_level": "none",
			"figure_caption_outline_level": 2,
			"unknown_key": 1
		}`)
		cfg, err := LoadConfig(path, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "方正黑体_GBK", cfg.H1Font)
		assert.Equal(t, 22.0, cfg.H1Size)
		assert.False(t, cfg.H2Bold)
		assert.Equal(t, 3.0, cfg.MarginLeft)
		assert.False(t, cfg.TableCaptionOutlineLevel.IsSet())
		assert.Equal(t, OutlineLevel(2), cfg.FigureCaptionOutlineLevel)
		assert.Equal(t, "仿宋_GB2312", cfg.BodyFont)
	})

	t.Run("invalid size falls back with warning", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"h1_size": "abc", "h2_size": 18}`)
		log, logs := observedLogger(zap.NewAtomicLevelAt(zap.WarnLevel))

		cfg, err := LoadConfig(path, nil, log)
		require.NoError(t, err)
		assert.Equal(t, 16.0, cfg.H1Size)
		assert.Equal(t, 18.0, cfg.H2Size)

		warnings := logs.FilterField(zap.String("key", "h1_size")).All()
		require.Len(t, warnings, 1)
		assert.Equal(t, zap.WarnLevel, warnings[0].Level)
	})

	t.Run("out of range values fall back", func(t *testing.T) {
		path := writeFile(t, "config.json", `{
			"body_size": -3,
			"margin_top": -1,
			"line_spacing": 0,
			"table_caption_outline_level": 12,
			"h3_bold": "maybe",
			"body_font": "  "
		}`)
		log, logs := observedLogger(zap.NewAtomicLevelAt(zap.WarnLevel))

		cfg, err := LoadConfig(path, nil, log)
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
		assert.Equal(t, 6, logs.Len())
	})

	t.Run("chinese size names", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"h3_size": "小四", "body_size": "三号 (16pt)", "table_caption_size": "五号"}`)
		cfg, err := LoadConfig(path, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 12.0, cfg.H3Size)
		assert.Equal(t, 16.0, cfg.BodySize)
		assert.Equal(t, 10.5, cfg.TableCaptionSize)
	})

	t.Run("malformed json falls back to defaults", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"h1_size": 16,`)
		log, logs := observedLogger(zap.NewAtomicLevelAt(zap.ErrorLevel))

		cfg, err := LoadConfig(path, nil, log)
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("REPORTFMT_BODY_SIZE", "14")
		t.Setenv("REPORTFMT_SET_OUTLINE", "false")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 14.0, cfg.BodySize)
		assert.False(t, cfg.SetOutline)
	})

	t.Run("directory path is an error", func(t *testing.T) {
		_, err := LoadConfig(t.TempDir(), nil, nil)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.BodyFont = "仿宋"
	cfg.TableCaptionOutlineLevel = OutlineNone
	cfg.H3Size = 10.5

	path := filepath.Join(t.TempDir(), "nested", "reportfmt.json")
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"table_caption_outline_level": "none"`)

	loaded, err := LoadConfig(path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, SaveConfig(cfg, ""))
}
