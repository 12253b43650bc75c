package scan

import (
	"strings"
	"sync"
)

// Discovery 发现适配器：给定一组根命名空间，返回携带指定标记的具体类型。
// 引导期间至少会查询 provider 与 singleton 两种标记。
type Discovery interface {
	Scan(namespaces []string) (*Result, error)
}

// Result 一次扫描的描述符快照。使用完毕必须 Close 释放，
// 无论扫描阶段成功或失败（调用方应 defer）。
type Result struct {
	mu     sync.Mutex
	descs  []*TypeDescriptor
	closed bool
}

// TypesWith 返回携带指定标记的描述符，按注册顺序。已关闭时返回 nil。
func (r *Result) TypesWith(marker Marker) []*TypeDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	var out []*TypeDescriptor
	for _, d := range r.descs {
		if d.Marker == marker {
			out = append(out, d)
		}
	}
	return out
}

// Closed 快照是否已释放
func (r *Result) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close 释放快照。可重复调用。
func (r *Result) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.descs = nil
	return nil
}

// Scan 实现 Discovery：过滤出命名空间内的描述符快照。
// 空命名空间集合匹配全部注册类型。
func (r *Registry) Scan(namespaces []string) (*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]*TypeDescriptor, 0, len(r.ordered))
	for _, d := range r.ordered {
		if d.Marker == MarkerNone {
			continue
		}
		if matchNamespaces(d, namespaces) {
			descs = append(descs, d)
		}
	}
	return &Result{descs: descs}, nil
}

// matchNamespaces 判断描述符是否落在任一根命名空间内。
// 命名空间即 Go 包路径，匹配自身或其子路径。
func matchNamespaces(d *TypeDescriptor, namespaces []string) bool {
	if len(namespaces) == 0 {
		return true
	}
	pkg := ""
	if d.Type != nil {
		pkg = baseType(d.Type).PkgPath()
	}
	for _, ns := range namespaces {
		if ns == "" || pkg == ns || strings.HasPrefix(pkg, ns+"/") {
			return true
		}
	}
	return false
}
