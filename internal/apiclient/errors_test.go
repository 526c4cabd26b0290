package apiclient

import "testing"

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string",
			body: `{"statusCode":409,"message":"Slug already exists"}`,
			want: "Slug already exists",
		},
		{
			name: "string array",
			body: `{"message":["name_vi should not be empty","name_en should not be empty"]}`,
			want: "name_vi should not be empty, name_en should not be empty",
		},
		{
			name: "validation errors with children",
			body: `{"message":[
				{"property":"name_vi","constraints":{"maxLength":"name_vi is too long","isNotEmpty":"name_vi should not be empty"}},
				{"property":"items","children":[{"property":"0","constraints":{"isUuid":"id must be a UUID"}}]}
			]}`,
			want: "name_vi should not be empty, name_vi is too long, id must be a UUID",
		},
		{
			name: "falls back to error field",
			body: `{"statusCode":500,"error":"Internal Server Error"}`,
			want: "Internal Server Error",
		},
		{
			name: "not json",
			body: "  bad gateway \n",
			want: "bad gateway",
		},
		{
			name: "empty",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("errorMessage: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	if got := (&APIError{StatusCode: 502}).Error(); got != "api: 502 Bad Gateway" {
		t.Errorf("got %q", got)
	}
	if got := (&APIError{StatusCode: 400, Message: "nope"}).Error(); got != "api: 400: nope" {
		t.Errorf("got %q", got)
	}
}
