package shared

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		ManagerID   string   `json:"managerId"`
		EmployeeIDs []string `json:"employeeIds"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     error
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"managerId": "MGR001", "employeeIds": ["EMP001"]}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"managerId": "MGR001",}`,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     ErrEmptyBody,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.requestBody))

			var target payload
			err := DecodeJSON(req, &target)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, "MGR001", target.ManagerID)
				assert.Equal(t, []string{"EMP001"}, target.EmployeeIDs)
			}
		})
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

type selfValidating struct {
	Name string
}

func (v *selfValidating) Validate() error {
	if v.Name == "invalid" {
		return errors.New("name is invalid")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		ManagerID   string   `validate:"required"`
		EmployeeIDs []string `validate:"required,min=1,dive,required"`
	}

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{"custom validator passes", &selfValidating{Name: "ok"}, false},
		{"custom validator fails", &selfValidating{Name: "invalid"}, true},
		{"tags pass", &tagged{ManagerID: "MGR001", EmployeeIDs: []string{"EMP001"}}, false},
		{"missing required field", &tagged{EmployeeIDs: []string{"EMP001"}}, true},
		{"empty slice", &tagged{ManagerID: "MGR001", EmployeeIDs: []string{}}, true},
		{"blank element", &tagged{ManagerID: "MGR001", EmployeeIDs: []string{""}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var verrs validator.ValidationErrors
	err := ValidateRequest(&tagged{})
	assert.True(t, errors.As(err, &verrs), "struct tags produce validator errors")
}
