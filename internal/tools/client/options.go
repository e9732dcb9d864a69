package client

import (
	"fmt"
	"os"
	"time"
)

const DefaultTimeout = 3 * time.Second

type OptionFunc func(o *Options)

type Options struct {
	// Name of the caller service, used for logging
	name string

	// Defaults to SERVICE_DOMAIN
	serviceDomain string

	// serviceHost - defaults to the sibling service's subdomain
	serviceHost string

	// pathPrefix - added before the provided path
	pathPrefix string

	// useHTTPS - defaults to false, used only with SERVICE_DOMAIN
	useHTTPS bool

	// baseURL - full URL to the service (including protocol) - overrides ServiceDomain and ServiceHost
	baseURL string

	// timeout - if not set, then default timeout is used
	timeout time.Duration
}

func WithServiceDomain(serviceDomain string) OptionFunc {
	return func(o *Options) {
		o.serviceDomain = serviceDomain
	}
}

func WithServiceHost(serviceHost string) OptionFunc {
	return func(o *Options) {
		o.serviceHost = serviceHost
	}
}

func WithPathPrefix(pathPrefix string) OptionFunc {
	return func(o *Options) {
		o.pathPrefix = pathPrefix
	}
}

func WithUseHTTPS(useHTTPS bool) OptionFunc {
	return func(o *Options) {
		o.useHTTPS = useHTTPS
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func NewOptions(optionFuncs ...OptionFunc) (*Options, error) {
	options := &Options{
		name: "checkout-hub",
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options, nil
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL(subDomain string, pathPrefix string) string {
	if o.baseURL != "" {
		return o.baseURL
	}

	serviceDomain := o.serviceDomain
	if serviceDomain == "" {
		serviceDomain = os.Getenv("SERVICE_DOMAIN")
	}

	serviceHost := o.serviceHost
	if serviceHost == "" {
		serviceHost = subDomain
	}

	prefix := o.pathPrefix
	if prefix == "" {
		prefix = pathPrefix
	}

	protocol := "http"
	if o.useHTTPS {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s.%s%s", protocol, serviceHost, serviceDomain, prefix)
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}
	return DefaultTimeout
}
