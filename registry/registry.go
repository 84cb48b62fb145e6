// Package registry 维护抗生素标签到分类器的不可变有序映射。
//
// Registry 是进程级单例：启动时按 manifest 顺序加载一次，之后只读，
// 支持并发读取。加载失败属于启动前置条件失败（进程不可服务），
// 不是请求级错误。遍历顺序在进程内稳定（即加载顺序），
// 保证相同输入得到确定性的报告。
package registry

import (
	"fmt"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/model"
)

// Entry 是一条注册项：抗生素标签（组内唯一键）与对应的分类器。
type Entry struct {
	Label      string
	Classifier model.Classifier
}

// Registry 是有序的分类器集合。
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New 按给定顺序创建 Registry。标签重复或分类器缺失时报错。
func New(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "registry: no models")
	}
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Label == "" {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "registry: blank label")
		}
		if e.Classifier == nil {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
				fmt.Sprintf("registry: nil classifier for %q", e.Label))
		}
		if _, ok := index[e.Label]; ok {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
				fmt.Sprintf("registry: duplicate label %q", e.Label))
		}
		index[e.Label] = i
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Registry{entries: out, index: index}, nil
}

// Entries 返回注册项的副本（保持加载顺序）。
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Get 按标签取分类器。
func (r *Registry) Get(label string) (model.Classifier, bool) {
	i, ok := r.index[label]
	if !ok {
		return nil, false
	}
	return r.entries[i].Classifier, true
}

// Labels 返回全部标签（保持加载顺序）。
func (r *Registry) Labels() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Label
	}
	return out
}

// Len 返回注册项数量。
func (r *Registry) Len() int { return len(r.entries) }
