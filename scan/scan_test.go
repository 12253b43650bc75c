package scan_test

import (
	"testing"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

type widget struct {
	Repo    *widget `inject:""`
	Named   *widget `inject:"primary"`
	Port    int     `prop:"server.port"`
	Fresh   *widget `inject:"" scope:"prototype"`
	Plain   string
	hidden  *widget `inject:""`
	Scoped2 *widget `scope:"singleton"`
}

func TestRegistryLookupNormalizesPointers(t *testing.T) {
	reg := scan.NewRegistry()
	reg.AddPrototype(scan.TypeOf[widget]())

	if !reg.IsPrototype(scan.TypeOf[widget]()) {
		t.Fatal("expected prototype marker on base type")
	}
	if !reg.IsPrototype(scan.TypeOf[*widget]()) {
		t.Fatal("expected pointer lookup to normalize to the base type")
	}

	d, ok := reg.Lookup(scan.TypeOf[*widget]())
	if !ok || d.Marker != scan.MarkerPrototype {
		t.Fatalf("expected descriptor lookup via pointer, got %v/%v", d, ok)
	}
}

func TestScanFiltersByNamespace(t *testing.T) {
	reg := scan.NewRegistry()
	reg.AddSingleton(scan.TypeOf[logging.Field]())
	reg.AddSingleton(scan.TypeOf[config.Table]())

	// 精确命名空间
	result, err := reg.Scan([]string{scan.NamespaceOf[logging.Field]()})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer result.Close()

	descs := result.TypesWith(scan.MarkerSingleton)
	if len(descs) != 1 || descs[0].Type != scan.TypeOf[logging.Field]() {
		t.Fatalf("expected only the logging type, got %v", descs)
	}

	// 父路径作为前缀匹配子包
	parent, err := reg.Scan([]string{"github.com/gocrud/ioc"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer parent.Close()
	if got := parent.TypesWith(scan.MarkerSingleton); len(got) != 2 {
		t.Fatalf("expected prefix match on parent path, got %d descriptors", len(got))
	}

	// 空命名空间集合匹配全部
	all, err := reg.Scan(nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer all.Close()
	if got := all.TypesWith(scan.MarkerSingleton); len(got) != 2 {
		t.Fatalf("expected empty namespaces to match everything, got %d", len(got))
	}
}

func TestScanExcludesMetadataOnlyDescriptors(t *testing.T) {
	reg := scan.NewRegistry()
	reg.AddSingleton(scan.TypeOf[logging.Field]())
	reg.Describe(scan.TypeOf[config.Table](), scan.OnInit("Close"))

	result, err := reg.Scan(nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer result.Close()

	if got := result.TypesWith(scan.MarkerSingleton); len(got) != 1 {
		t.Fatalf("metadata-only descriptors must not be scanned, got %d", len(got))
	}

	// 元数据仍可查找
	if d, ok := reg.Lookup(scan.TypeOf[config.Table]()); !ok || len(d.InitMethods) != 1 {
		t.Fatal("expected Describe metadata to be retrievable")
	}
}

func TestResultClose(t *testing.T) {
	reg := scan.NewRegistry()
	reg.AddSingleton(scan.TypeOf[logging.Field]())

	result, err := reg.Scan(nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Closed() {
		t.Fatal("fresh result must be open")
	}
	if err := result.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !result.Closed() {
		t.Fatal("expected result to report closed")
	}
	if result.TypesWith(scan.MarkerSingleton) != nil {
		t.Fatal("closed result must not serve descriptors")
	}
	// 重复关闭无害
	if err := result.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestFieldsOfParsesMarkers(t *testing.T) {
	fds := scan.FieldsOf(scan.TypeOf[*widget]())
	if len(fds) != 7 {
		t.Fatalf("expected 7 field descriptors, got %d", len(fds))
	}

	byName := make(map[string]scan.FieldDescriptor)
	for _, fd := range fds {
		byName[fd.Name] = fd
	}

	if fd := byName["Repo"]; !fd.Inject || fd.Qualifier != "" || !fd.Marked() {
		t.Fatalf("Repo parsed wrong: %+v", fd)
	}
	if fd := byName["Named"]; !fd.Inject || fd.Qualifier != "primary" {
		t.Fatalf("Named parsed wrong: %+v", fd)
	}
	if fd := byName["Port"]; !fd.HasProperty || fd.PropertyKey != "server.port" || fd.Inject {
		t.Fatalf("Port parsed wrong: %+v", fd)
	}
	if fd := byName["Fresh"]; !fd.Prototype() || !fd.Scoped() {
		t.Fatalf("Fresh parsed wrong: %+v", fd)
	}
	if fd := byName["Plain"]; fd.Marked() || fd.Scoped() {
		t.Fatalf("Plain must carry no markers: %+v", fd)
	}
	if fd := byName["hidden"]; !fd.Inject {
		t.Fatal("unexported fields carry markers too")
	}
	if fd := byName["Scoped2"]; fd.Marked() || !fd.Scoped() {
		t.Fatalf("scope tag alone must not mark the field for injection: %+v", fd)
	}
}

func TestFieldsOfNonStruct(t *testing.T) {
	if scan.FieldsOf(scan.TypeOf[int]()) != nil {
		t.Fatal("non-struct types have no field descriptors")
	}
	if scan.FieldsOf(nil) != nil {
		t.Fatal("nil type has no field descriptors")
	}
}

func TestTypeName(t *testing.T) {
	want := "github.com/gocrud/ioc/logging.Field"
	if got := scan.TypeName(scan.TypeOf[logging.Field]()); got != want {
		t.Fatalf("TypeName = %q, want %q", got, want)
	}
	// 指针归一化到基础类型
	if got := scan.TypeName(scan.TypeOf[*logging.Field]()); got != want {
		t.Fatalf("TypeName(ptr) = %q, want %q", got, want)
	}
	if got := scan.TypeName(nil); got != "<nil>" {
		t.Fatalf("TypeName(nil) = %q", got)
	}
}

func TestProviderOptions(t *testing.T) {
	reg := scan.NewRegistry()
	reg.AddProvider(scan.TypeOf[widget](),
		scan.Bean("Widget"),
		scan.BeanNamed("Store", "db"),
		scan.PrototypeBean("Tmp"),
		scan.Named("factory"),
	)

	d, ok := reg.Lookup(scan.TypeOf[widget]())
	if !ok {
		t.Fatal("expected descriptor")
	}
	if d.Name != "factory" || d.Marker != scan.MarkerProvider {
		t.Fatalf("descriptor head parsed wrong: %+v", d)
	}
	if len(d.BeanMethods) != 3 {
		t.Fatalf("expected 3 bean methods, got %d", len(d.BeanMethods))
	}
	if m := d.BeanMethods[0]; m.Method != "Widget" || m.Prototype || m.Name != "" {
		t.Fatalf("Bean parsed wrong: %+v", m)
	}
	if m := d.BeanMethods[1]; m.Method != "Store" || m.Name != "db" {
		t.Fatalf("BeanNamed parsed wrong: %+v", m)
	}
	if m := d.BeanMethods[2]; m.Method != "Tmp" || !m.Prototype {
		t.Fatalf("PrototypeBean parsed wrong: %+v", m)
	}
}
