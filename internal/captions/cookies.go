package captions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const httpOnlyPrefix = "#HttpOnly_"

// LoadCookieJar читает файл cookies.txt в формате Netscape и возвращает cookie jar
func LoadCookieJar(path string) (http.CookieJar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookie file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	cookies, err := ParseNetscapeCookies(f)
	if err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("cookie file %s contains no cookies", path)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	for _, c := range cookies {
		u := &url.URL{Scheme: "https", Host: c.Domain, Path: "/"}
		jar.SetCookies(u, []*http.Cookie{c})
	}
	return jar, nil
}

// ParseNetscapeCookies разбирает строки вида
// domain<TAB>subdomains<TAB>path<TAB>secure<TAB>expires<TAB>name<TAB>value
func ParseNetscapeCookies(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("line %d: expected 7 fields, got %d", lineNo, len(fields))
		}

		c := &http.Cookie{
			Domain:   strings.TrimPrefix(fields[0], "."),
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if c.Domain == "" || c.Name == "" {
			return nil, fmt.Errorf("line %d: %w", lineNo, errors.New("empty domain or name"))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad expiration: %w", lineNo, err)
		}
		if expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}

		cookies = append(cookies, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}
