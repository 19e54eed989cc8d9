package captions

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ForwardHostHeader заголовок, в котором промежуточный прокси-воркер получает исходный хост
const ForwardHostHeader = "X-Forward-Host"

// TransportOptions сетевые настройки HTTP-клиента
type TransportOptions struct {
	ProxyURL  string         // HTTP(S) прокси для всех запросов
	WorkerURL string         // промежуточный воркер, через который пересылаются запросы
	Jar       http.CookieJar // cookie для авторизованного клиента
	Timeout   time.Duration  // общий таймаут одного запроса
}

// NewHTTPClient строит HTTP-клиент с учетом прокси и пересылки через воркер
func NewHTTPClient(opts TransportOptions) (*http.Client, error) {
	base := &http.Transport{
		Proxy:                 nil,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}

	if p := strings.TrimSpace(opts.ProxyURL); p != "" {
		u, err := url.Parse(p)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("proxy URL must include scheme and host")
		}
		base.Proxy = http.ProxyURL(u)
	}

	var rt http.RoundTripper = base
	if w := strings.TrimSpace(opts.WorkerURL); w != "" {
		u, err := url.Parse(w)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("worker URL must include scheme and host")
		}
		rt = &forwardTransport{worker: u, base: base}
	}

	return &http.Client{
		Transport: rt,
		Jar:       opts.Jar,
		Timeout:   opts.Timeout,
	}, nil
}

// forwardTransport переписывает адрес запроса на воркер, передавая исходный хост в заголовке.
// Путь и query сохраняются, путь воркера используется как префикс.
type forwardTransport struct {
	worker *url.URL
	base   http.RoundTripper
}

func (t *forwardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(ForwardHostHeader, req.URL.Host)
	r.URL.Scheme = t.worker.Scheme
	r.URL.Host = t.worker.Host
	r.URL.Path = strings.TrimRight(t.worker.Path, "/") + req.URL.Path
	r.URL.RawPath = ""
	r.Host = t.worker.Host
	return t.base.RoundTrip(r)
}
