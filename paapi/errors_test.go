package paapi

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewError_Mapping(t *testing.T) {
	tests := []struct {
		code      string
		wantType  string
		retryable bool
	}{
		{CodeSignatureDoesNotMatch, "*paapi.SignatureDoesNotMatchError", false},
		{CodeRequestThrottled, "*paapi.RequestThrottledError", true},
		{CodeRequestExpired, "*paapi.RequestExpiredError", true},
		{"AWS.ECommerceService.NoExactMatches", "*paapi.ServiceError", false},
		{CodeUnknownError, "*paapi.ServiceError", false},
		{"", "*paapi.ServiceError", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := NewError(tt.code, "msg")
			if got := fmt.Sprintf("%T", err); got != tt.wantType {
				t.Fatalf("NewError(%q) type = %s, want %s", tt.code, got, tt.wantType)
			}
			if IsRetryable(err) != tt.retryable {
				t.Fatalf("IsRetryable = %v, want %v", IsRetryable(err), tt.retryable)
			}
			se, ok := AsServiceError(err)
			if !ok || se.Code != tt.code || se.Message != "msg" {
				t.Fatalf("AsServiceError = %+v, %v", se, ok)
			}
		})
	}
}

func TestServiceError_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetch page 2: %w", NewError(CodeRequestThrottled, "slow down"))
	if !IsThrottled(err) || IsExpired(err) {
		t.Fatalf("classification lost through wrapping")
	}
	if _, ok := AsServiceError(errors.New("plain")); ok {
		t.Fatalf("plain errors are not service errors")
	}
}

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		err  *ServiceError
		want string
	}{
		{&ServiceError{Code: "X", Message: "boom", RequestID: "r1"}, "paapi: boom (X) request_id=r1"},
		{&ServiceError{Code: "X"}, "paapi: service error (X)"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error() = %q, want %q", got, tt.want)
		}
	}
}
