package registry

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/model"
)

// Manifest 是模型组清单（YAML/JSON），条目顺序即 Registry 顺序。
type Manifest struct {
	Models []ManifestEntry `yaml:"models" json:"models"`
}

// ManifestEntry 是清单中的单个模型。
// 参数来源二选一：Params（本地文件路径）或 StoreKey（从 core.Store 读取 blob）。
type ManifestEntry struct {
	Label     string  `yaml:"label" json:"label"`
	Type      string  `yaml:"type" json:"type"`                             // lr / gbdt / remote
	Params    string  `yaml:"params,omitempty" json:"params,omitempty"`     // 参数文件路径（lr/gbdt）
	StoreKey  string  `yaml:"store_key,omitempty" json:"store_key,omitempty"` // Store 中的参数 key（lr/gbdt）
	Model     string  `yaml:"model,omitempty" json:"model,omitempty"`       // 远程服务上的模型名（remote）
	Threshold float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Timeout   int     `yaml:"timeout,omitempty" json:"timeout,omitempty"` // 远程调用超时（秒）
}

// LoadManifest 从 YAML 文件加载清单。
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Models) == 0 {
		return nil, fmt.Errorf("manifest lists no models")
	}
	return &m, nil
}

// BuildOption 配置清单构建过程。
type BuildOption func(*builder)

// WithStore 设置参数 blob 的存储后端（清单条目使用 store_key 时必需）。
func WithStore(st core.Store) BuildOption {
	return func(b *builder) { b.store = st }
}

// WithMLService 设置远程推理服务（清单条目使用 type: remote 时必需）。
func WithMLService(svc core.MLService) BuildOption {
	return func(b *builder) { b.service = svc }
}

type builder struct {
	store   core.Store
	service core.MLService
}

// Build 按清单顺序构建 Registry。任何条目失败都使整体失败：
// 模型组必须完整可用，进程才可对外服务。
func Build(ctx context.Context, m *Manifest, opts ...BuildOption) (*Registry, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	entries := make([]Entry, 0, len(m.Models))
	for _, me := range m.Models {
		clf, err := b.buildClassifier(ctx, &me)
		if err != nil {
			return nil, fmt.Errorf("build model %q: %w", me.Label, err)
		}
		entries = append(entries, Entry{Label: me.Label, Classifier: clf})
	}
	return New(entries)
}

func (b *builder) buildClassifier(ctx context.Context, me *ManifestEntry) (model.Classifier, error) {
	switch me.Type {
	case "lr":
		data, err := b.readParams(ctx, me)
		if err != nil {
			return nil, err
		}
		lr, err := model.ParseLRModel(data)
		if err != nil {
			return nil, err
		}
		if me.Threshold > 0 {
			lr.Threshold = me.Threshold
		}
		return lr, nil

	case "gbdt":
		data, err := b.readParams(ctx, me)
		if err != nil {
			return nil, err
		}
		gbdt, err := model.ParseGBDTModel(data)
		if err != nil {
			return nil, err
		}
		if me.Threshold > 0 {
			gbdt.Threshold = me.Threshold
		}
		return gbdt, nil

	case "remote":
		if b.service == nil {
			return nil, fmt.Errorf("manifest uses remote model but no MLService configured")
		}
		opts := []model.RemoteModelOption{model.WithRemoteModelName(me.Model)}
		if me.Threshold > 0 {
			opts = append(opts, model.WithRemoteThreshold(me.Threshold))
		}
		if me.Timeout > 0 {
			opts = append(opts, model.WithRemoteTimeout(time.Duration(me.Timeout)*time.Second))
		}
		return model.NewRemoteModel(me.Label, b.service, opts...), nil

	default:
		return nil, fmt.Errorf("unknown model type %q", me.Type)
	}
}

func (b *builder) readParams(ctx context.Context, me *ManifestEntry) ([]byte, error) {
	switch {
	case me.StoreKey != "":
		if b.store == nil {
			return nil, fmt.Errorf("manifest uses store_key but no store configured")
		}
		data, err := b.store.Get(ctx, me.StoreKey)
		if err != nil {
			return nil, fmt.Errorf("load params from %s: %w", b.store.Name(), err)
		}
		return data, nil
	case me.Params != "":
		data, err := os.ReadFile(me.Params)
		if err != nil {
			return nil, fmt.Errorf("read params file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("entry has neither params nor store_key")
	}
}
