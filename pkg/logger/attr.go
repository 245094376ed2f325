package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
// An empty id produces an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Route records a site route under "route".
func Route(path string) slog.Attr {
	return slog.String("route", path)
}

// SortKey records the active timeline ordering under "sort_key".
func SortKey(key string) slog.Attr {
	return slog.String("sort_key", key)
}

// Widget records the interactive widget handling a request under "widget".
func Widget(name string) slog.Attr {
	return slog.String("widget", name)
}

// Check records a verification check name under "check".
func Check(name string) slog.Attr {
	return slog.String("check", name)
}

// File records a file path under "file".
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// Viewport records a screenshot viewport under "viewport".
func Viewport(name string) slog.Attr {
	return slog.String("viewport", name)
}

// Seed records a generator seed under "seed".
func Seed(seed uint64) slog.Attr {
	return slog.Uint64("seed", seed)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Count records a count under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// ClientIP records the resolved client address under "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}
