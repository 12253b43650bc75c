package ioc

import (
	"reflect"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

// Phase 引导状态机的状态。状态严格单向推进，不支持回退。
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePropertiesResolved
	PhaseProvidersRegistered
	PhaseSingletonsRegistered
	PhaseInjectionsResolved
	PhaseInitialized
	PhaseStarted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NOT_STARTED"
	case PhasePropertiesResolved:
		return "PROPERTIES_RESOLVED"
	case PhaseProvidersRegistered:
		return "PROVIDERS_REGISTERED"
	case PhaseSingletonsRegistered:
		return "SINGLETONS_REGISTERED"
	case PhaseInjectionsResolved:
		return "INJECTIONS_RESOLVED"
	case PhaseInitialized:
		return "INITIALIZED"
	case PhaseStarted:
		return "STARTED"
	default:
		return "UNKNOWN"
	}
}

// Container IoC 容器。编排引导流程：解析属性、执行发现、注册提供者产出
// 与扫描单例、解析注入、运行生命周期钩子。
//
// 引导是单线程、严格顺序的；并发调用 Start 需要调用方自行串行化。
// 启动完成后 Catalog 与属性表只读，Prototype 可安全并发调用。
type Container struct {
	catalog    *Catalog
	table      *config.Table
	sources    []config.Source
	namespaces []string
	registry   *scan.Registry
	discovery  scan.Discovery
	logger     logging.Logger
	phase      Phase
}

// New 创建容器。默认使用 scan.Default() 注册表和控制台日志。
func New(opts ...Option) *Container {
	c := &Container{
		table:    config.NewTable(),
		registry: scan.Default(),
		logger:   logging.NewLogger().WithCategory("ioc"),
		phase:    PhaseNotStarted,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.discovery == nil {
		c.discovery = c.registry
	}
	c.catalog = NewCatalog(c.table)
	return c
}

// Catalog 返回 bean 目录（启动后只读）
func (c *Container) Catalog() *Catalog {
	return c.catalog
}

// Properties 返回解析后的属性表（启动后只读）
func (c *Container) Properties() *config.Table {
	return c.table
}

// Phase 返回当前引导状态
func (c *Container) Phase() Phase {
	return c.phase
}

// Start 执行引导流程。幂等：已启动的容器再次调用只告警，不报错也不重跑任何阶段。
// 任一阶段的首个失败立即中止引导并返回；失败后的容器处于中间状态，不可复用。
func (c *Container) Start() error {
	if c.phase == PhaseStarted {
		c.logger.Warn("container already started")
		return nil
	}

	c.resolveProperties()
	c.advance(PhasePropertiesResolved)

	// 扫描资源在离开扫描块时确定性释放，无论成功或失败
	result, err := c.discovery.Scan(c.namespaces)
	if err != nil {
		return wrapError(StatusClassNotFound, err, "discovery scan failed")
	}
	defer result.Close()

	if err := c.registerProviders(result.TypesWith(scan.MarkerProvider)); err != nil {
		return err
	}
	c.advance(PhaseProvidersRegistered)

	if err := c.registerSingletons(result.TypesWith(scan.MarkerSingleton)); err != nil {
		return err
	}
	c.advance(PhaseSingletonsRegistered)

	if err := c.resolveInjections(); err != nil {
		return err
	}
	c.advance(PhaseInjectionsResolved)

	if err := c.initBeans(); err != nil {
		return err
	}
	c.advance(PhaseInitialized)

	c.advance(PhaseStarted)
	c.logger.Debug("container started", logging.F("beans", c.catalog.Len()))
	return nil
}

// advance 推进状态机并记录
func (c *Container) advance(next Phase) {
	c.phase = next
	c.logger.Debug("phase advanced", logging.F("phase", next))
}

// resolveProperties 按顺序合并全部属性源（同键后写者生效），
// 再对每个键应用进程级环境变量覆盖。读取失败的源跳过，不中断引导。
func (c *Container) resolveProperties() {
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			c.logger.Warn("skipping unreadable property source",
				logging.F("source", source.Name()), logging.F("error", err))
			continue
		}
		c.table.Merge(data)
	}
	c.table.ApplyOverrides()
}

// registerProviders 实例化提供者类型并注册其产出的 bean。
// 提供者必须是无依赖的叶子构造器：自身声明作用域标记字段的类型整体拒绝。
func (c *Container) registerProviders(descs []*scan.TypeDescriptor) error {
	for _, d := range descs {
		if d.Type == nil {
			return newError(StatusClassNotFound, "provider descriptor has no resolvable type")
		}
		for _, fd := range scan.FieldsOf(d.Type) {
			if fd.Scoped() {
				c.logger.Error("injections are not allowed on bean providers",
					logging.F("type", scan.TypeName(d.Type)), logging.F("field", fd.Name))
				return newError(StatusBeanProviderInjections,
					"provider %s declares scope-marked field %s", scan.TypeName(d.Type), fd.Name)
			}
		}

		instance, err := c.instantiate(d.Type)
		if err != nil {
			return err
		}
		rv := reflect.ValueOf(instance)

		for _, bm := range d.BeanMethods {
			if bm.Prototype {
				c.logger.Warn("bean providers do not support prototypes",
					logging.F("type", scan.TypeName(d.Type)), logging.F("method", bm.Method))
				continue
			}
			method := rv.MethodByName(bm.Method)
			if !method.IsValid() {
				return newError(StatusOperationNotSupported,
					"provider method %s.%s not found", scan.TypeName(d.Type), bm.Method)
			}
			if method.Type().NumIn() != 0 {
				c.logger.Error("bean provider methods cannot have parameters",
					logging.F("method", bm.Method))
				return newError(StatusOperationNotSupported,
					"provider method %s.%s declares parameters", scan.TypeName(d.Type), bm.Method)
			}
			if method.Type().NumOut() == 0 {
				c.logger.Error("bean provider methods can not return void",
					logging.F("method", bm.Method))
				return newError(StatusOperationNotSupported,
					"provider method %s.%s returns nothing", scan.TypeName(d.Type), bm.Method)
			}

			bean, err := invokeProvider(method)
			if err != nil {
				c.logger.Error("failed to invoke bean provider method",
					logging.F("method", bm.Method), logging.F("error", err))
				return err
			}
			name := bm.Name
			if name == "" {
				name = bm.Method
			}
			c.catalog.Register(bean, name)
		}
	}
	return nil
}

// invokeProvider 调用提供者方法并取第一个返回值作为 bean。
// 末位 error 返回值非 nil，或调用发生 panic，都按调用失败处理。
func invokeProvider(method reflect.Value) (bean any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(StatusInvocationError, "provider method panicked: %v", r)
		}
	}()

	results := method.Call(nil)
	if len(results) > 1 {
		last := results[len(results)-1]
		if last.Type().Implements(errorType) && !last.IsNil() {
			return nil, wrapError(StatusInvocationError, last.Interface().(error),
				"provider method returned error")
		}
	}
	return results[0].Interface(), nil
}

// registerSingletons 实例化扫描到的单例类型并注册。
// 注册名取显式限定名，缺省为完全限定类型名。
func (c *Container) registerSingletons(descs []*scan.TypeDescriptor) error {
	for _, d := range descs {
		if d.Type == nil {
			return newError(StatusClassNotFound, "singleton descriptor has no resolvable type")
		}
		instance, err := c.instantiate(d.Type)
		if err != nil {
			return err
		}
		name := d.Name
		if name == "" {
			name = scan.TypeName(d.Type)
		}
		c.catalog.Register(instance, name)
	}
	return nil
}

// instantiate 通过零参初始化构造实例（reflect.New），返回指向结构体的指针。
// 接口等非具体类型不可实例化；其余构造失败不再细分原因。
func (c *Container) instantiate(t reflect.Type) (instance any, err error) {
	if t == nil {
		return nil, newError(StatusClassNotFound, "type cannot be resolved")
	}
	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Kind() == reflect.Interface {
		c.logger.Error("interfaces are not allowed as beans", logging.F("type", t.String()))
		return nil, newError(StatusBeanIsInterface, "cannot instantiate interface %s", t)
	}
	if base.Kind() != reflect.Struct {
		return nil, newError(StatusBeanInstanceFailed, "cannot instantiate %s", t)
	}

	defer func() {
		if r := recover(); r != nil {
			err = newError(StatusBeanInstanceFailed, "constructing %s panicked: %v", t, r)
		}
	}()
	return reflect.New(base).Interface(), nil
}

// initBeans 对目录中每个实例，按声明顺序调用其描述符里的生命周期初始化方法。
// 首个失败即中止，后续 bean 不再初始化。
func (c *Container) initBeans() error {
	for _, rec := range c.catalog.snapshot() {
		d, ok := c.registry.Lookup(rec.Type())
		if !ok || len(d.InitMethods) == 0 {
			continue
		}
		rv := reflect.ValueOf(rec.Instance())
		for _, name := range d.InitMethods {
			method := rv.MethodByName(name)
			if !method.IsValid() || method.Type().NumIn() != 0 {
				c.logger.Warn("skipping unusable init method",
					logging.F("bean", rec.Name()), logging.F("method", name))
				continue
			}
			if err := invokeInit(rec, name, method); err != nil {
				c.logger.Error("unable to init bean",
					logging.F("bean", rec.Name()), logging.F("method", name), logging.F("error", err))
				return err
			}
		}
	}
	return nil
}

// invokeInit 调用单个初始化方法。panic 或非 nil error 返回都是初始化失败。
func invokeInit(rec *BeanRecord, name string, method reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(StatusBeanInitFailed, "init method %s on bean %s panicked: %v",
				name, rec.Name(), r)
		}
	}()

	results := method.Call(nil)
	if len(results) > 0 {
		last := results[len(results)-1]
		if last.Type().Implements(errorType) && !last.IsNil() {
			return wrapError(StatusBeanInitFailed, last.Interface().(error),
				"init method %s on bean %s failed", name, rec.Name())
		}
	}
	return nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
