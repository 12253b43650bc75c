package ioc

import (
	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

// Option 容器配置项
type Option func(*Container)

// WithSources 指定属性源，按给定顺序合并（同键后写者生效）
func WithSources(sources ...config.Source) Option {
	return func(c *Container) {
		c.sources = append(c.sources, sources...)
	}
}

// WithNamespaces 指定要扫描的根命名空间（Go 包路径）。缺省扫描全部注册类型。
func WithNamespaces(namespaces ...string) Option {
	return func(c *Container) {
		c.namespaces = append(c.namespaces, namespaces...)
	}
}

// WithRegistry 指定描述符注册表，测试中用于隔离全局状态
func WithRegistry(registry *scan.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithDiscovery 指定发现适配器，缺省使用注册表自身
func WithDiscovery(discovery scan.Discovery) Option {
	return func(c *Container) {
		c.discovery = discovery
	}
}

// WithLogger 指定日志实现
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}
