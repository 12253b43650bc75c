package ioc

import (
	"iter"
	"reflect"

	"github.com/gocrud/ioc/config"
)

// BeanRecord 目录中的一条注册记录：实例、注册名与运行时类型。
// 注册后不再变更。
type BeanRecord struct {
	instance any
	name     string
	rtype    reflect.Type
}

// Instance 返回构造好的实例
func (r *BeanRecord) Instance() any {
	return r.instance
}

// Name 返回注册名
func (r *BeanRecord) Name() string {
	return r.name
}

// Type 返回实例的运行时类型
func (r *BeanRecord) Type() reflect.Type {
	return r.rtype
}

func (r *BeanRecord) String() string {
	typ := "<nil>"
	if r.rtype != nil {
		typ = r.rtype.String()
	}
	return "BeanRecord{name=" + r.name + ", type=" + typ + "}"
}

// Catalog bean 注册目录。保序存放全部 BeanRecord，并持有共享的属性表。
// 引导期间由容器独占写入，启动完成后只读，可被任意并发读取。
type Catalog struct {
	records []*BeanRecord
	table   *config.Table
}

// NewCatalog 创建目录
func NewCatalog(table *config.Table) *Catalog {
	return &Catalog{table: table}
}

// Register 追加一条记录。不做唯一性检查：
// 重复的 (类型, 名字) 在注册期合法，歧义在解析期才会失败。
func (c *Catalog) Register(instance any, name string) {
	c.records = append(c.records, &BeanRecord{
		instance: instance,
		name:     name,
		rtype:    reflect.TypeOf(instance),
	})
}

// FetchCandidates 返回运行时类型可赋值给 typ 的全部记录。
// name 非空时进一步按注册名过滤。匹配是结构性的（可赋值性），不是仅限精确类型。
func (c *Catalog) FetchCandidates(typ reflect.Type, name string) []*BeanRecord {
	if typ == nil {
		return nil
	}
	var out []*BeanRecord
	for _, rec := range c.records {
		if rec.rtype == nil || !rec.rtype.AssignableTo(typ) {
			continue
		}
		if name != "" && rec.name != name {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Records 按注册顺序惰性遍历全部记录，可重复遍历
func (c *Catalog) Records() iter.Seq[*BeanRecord] {
	return func(yield func(*BeanRecord) bool) {
		for _, rec := range c.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// GetProperty 从属性表按键取值
func (c *Catalog) GetProperty(key string) (string, bool) {
	if c.table == nil {
		return "", false
	}
	return c.table.Get(key)
}

// Len 返回记录数
func (c *Catalog) Len() int {
	return len(c.records)
}

// snapshot 返回记录切片的浅拷贝，注入阶段基于进入时的快照运行
func (c *Catalog) snapshot() []*BeanRecord {
	out := make([]*BeanRecord, len(c.records))
	copy(out, c.records)
	return out
}
