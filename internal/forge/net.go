package forge

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/apexforge/afns/internal/value"
)

// NewNetModule builds `forge.net` (spec §4.4): synchronous HTTP get/post
// wrappers gated on the "net" capability and a NetPolicy carried on ctx,
// grounded on the teacher's NetContext secure-defaults policy (https
// only, no localhost, capped body size, capped redirects) instead of a
// bare http.Get.
func NewNetModule(ctx *Context) value.Module {
	m := value.NewModule("forge.net")
	mem := *m.Members

	client := &http.Client{
		Timeout: ctx.Net.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= ctx.Net.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	do := func(method, rawURL, body string) (value.Value, error) {
		if err := ctx.RequireCap("net"); err != nil {
			return nil, err
		}
		u, perr := url.Parse(rawURL)
		if perr != nil {
			return value.Err(value.Str{Val: perr.Error()}), nil
		}
		if verr := checkNetPolicy(ctx.Net, u); verr != "" {
			return value.Err(value.Str{Val: verr}), nil
		}
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, rerr := http.NewRequest(method, rawURL, reader)
		if rerr != nil {
			return value.Err(value.Str{Val: rerr.Error()}), nil
		}
		req.Header.Set("User-Agent", ctx.Net.UserAgent)
		resp, derr := client.Do(req)
		if derr != nil {
			return value.Err(value.Str{Val: derr.Error()}), nil
		}
		defer resp.Body.Close()
		limited := io.LimitReader(resp.Body, ctx.Net.MaxBytes)
		data, rerr := io.ReadAll(limited)
		if rerr != nil {
			return value.Err(value.Str{Val: rerr.Error()}), nil
		}
		return value.Ok(value.Str{Val: string(data)}), nil
	}

	mem["get"] = &value.Builtin{Name: "forge.net.get", Fn: func(args []value.Value) (value.Value, error) {
		u, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return do(http.MethodGet, u, "")
	}}
	mem["post"] = &value.Builtin{Name: "forge.net.post", Fn: func(args []value.Value) (value.Value, error) {
		u, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		body, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return do(http.MethodPost, u, body)
	}}

	return m
}

func checkNetPolicy(p *NetPolicy, u *url.URL) string {
	if u.Scheme != "https" && !(u.Scheme == "http" && p.AllowHTTP) {
		return "blocked scheme: " + u.Scheme
	}
	host := u.Hostname()
	if isLocalHost(host) && !p.AllowLocalhost {
		return "blocked host: " + host
	}
	if len(p.AllowedHosts) > 0 && !contains(p.AllowedHosts, host) {
		return "host not in allowlist: " + host
	}
	return ""
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func contains(hosts []string, host string) bool {
	for _, h := range hosts {
		if h == host {
			return true
		}
	}
	return false
}
