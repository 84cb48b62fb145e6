package feast

import (
	"context"
	"testing"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// 注意：这是一个示例测试，实际使用时需要连接真实的 Feast 服务器
func TestGrpcClient_GetOnlineFeatures(t *testing.T) {
	t.Skip("需要连接真实的 Feast 服务器才能运行")

	ctx := context.Background()

	client, err := NewGrpcClient("localhost", 6565, "amr")
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	defer client.Close()

	req := &GetOnlineFeaturesRequest{
		Features: []string{
			"patient_stats:age",
			"patient_labs:bacteria_count",
		},
		EntityRows: []map[string]interface{}{
			{"patient_id": "p-1001"},
			{"patient_id": "p-1002"},
		},
		Project: "amr",
	}

	resp, err := client.GetOnlineFeatures(ctx, req)
	if err != nil {
		t.Fatalf("获取特征失败: %v", err)
	}

	if len(resp.Rows) != 2 {
		t.Errorf("期望 2 个特征行，实际得到 %d 个", len(resp.Rows))
	}
	for i, row := range resp.Rows {
		if len(row.Values) == 0 {
			t.Errorf("特征行 %d 为空", i)
		}
		t.Logf("特征行 %d: %+v", i, row.Values)
	}
}

func TestConvertFromSDKValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{name: "proto double", in: feastsdk.DoubleVal(1200), want: float64(1200)},
		{name: "proto float", in: feastsdk.FloatVal(0.5), want: float64(0.5)},
		{name: "proto int32", in: feastsdk.Int32Val(34), want: float64(34)},
		{name: "proto int64", in: feastsdk.Int64Val(9800), want: float64(9800)},
		{name: "proto bool", in: feastsdk.BoolVal(true), want: float64(1)},
		{name: "proto string", in: feastsdk.StrVal("ICU"), want: "ICU"},
		{name: "proto bytes", in: feastsdk.BytesVal([]byte("ward-3")), want: "ward-3"},
		{name: "proto unset", in: &feasttypes.Value{}, want: nil},
		{name: "plain float64", in: float64(42), want: float64(42)},
		{name: "plain string", in: "7.5", want: "7.5"},
		{name: "nil", in: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertFromSDKValue(tt.in); got != tt.want {
				t.Errorf("convertFromSDKValue(%v) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestGrpcClient_RequestValidation(t *testing.T) {
	c := &GrpcClient{Project: "amr"}

	tests := []struct {
		name string
		req  *GetOnlineFeaturesRequest
	}{
		{
			name: "no features",
			req:  &GetOnlineFeaturesRequest{EntityRows: []map[string]interface{}{{"patient_id": "p1"}}},
		},
		{
			name: "no entity rows",
			req:  &GetOnlineFeaturesRequest{Features: []string{"patient_stats:age"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.GetOnlineFeatures(context.Background(), tt.req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
