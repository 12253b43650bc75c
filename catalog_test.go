package ioc_test

import (
	"testing"

	"github.com/gocrud/ioc"
	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/scan"
)

func TestCatalogRegistrationKeepsOrderAndDuplicates(t *testing.T) {
	catalog := ioc.NewCatalog(config.NewTable())

	// 重复的 (类型, 名字) 在注册期合法
	catalog.Register(&Cache{Label: "one"}, "cache")
	catalog.Register(&Cache{Label: "two"}, "cache")
	catalog.Register(&Repository{}, "repo")

	if catalog.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", catalog.Len())
	}

	var names []string
	for rec := range catalog.Records() {
		names = append(names, rec.Name())
	}
	if names[0] != "cache" || names[1] != "cache" || names[2] != "repo" {
		t.Fatalf("records must keep registration order, got %v", names)
	}

	// Records 是可重复遍历的序列
	count := 0
	for range catalog.Records() {
		count++
	}
	if count != 3 {
		t.Fatalf("expected a restartable sequence, second pass saw %d", count)
	}
}

func TestFetchCandidatesMatchesAssignability(t *testing.T) {
	catalog := ioc.NewCatalog(config.NewTable())
	greeter := &ConsoleGreeter{}
	catalog.Register(greeter, "console")
	catalog.Register(&Repository{}, "repo")

	// 接口请求按可赋值性匹配实现者
	got := catalog.FetchCandidates(scan.TypeOf[Greeter](), "")
	if len(got) != 1 || got[0].Instance() != greeter {
		t.Fatalf("expected the implementer to match an interface request, got %v", got)
	}

	// 精确指针类型匹配
	got = catalog.FetchCandidates(scan.TypeOf[*Repository](), "")
	if len(got) != 1 {
		t.Fatalf("expected exactly one *Repository, got %d", len(got))
	}

	// 名字过滤
	got = catalog.FetchCandidates(scan.TypeOf[Greeter](), "console")
	if len(got) != 1 {
		t.Fatal("expected name filter to keep the matching record")
	}
	got = catalog.FetchCandidates(scan.TypeOf[Greeter](), "other")
	if len(got) != 0 {
		t.Fatal("expected name filter to drop non-matching records")
	}
}

func TestCatalogPropertyView(t *testing.T) {
	table := config.NewTable()
	table.Set("server.port", "8080")
	catalog := ioc.NewCatalog(table)

	if v, ok := catalog.GetProperty("server.port"); !ok || v != "8080" {
		t.Fatalf("expected property lookup to delegate to the table, got %q/%v", v, ok)
	}
	if _, ok := catalog.GetProperty("missing"); ok {
		t.Fatal("expected absence for unknown keys")
	}
}
