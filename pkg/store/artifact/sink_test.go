package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPutObject struct {
	mock.Mock
}

func (m *MockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Asha Rao_Report.txt", FileName("Asha Rao_Report", ".txt"))
	assert.Equal(t, "a_b_Report.txt", FileName("a/b_Report", ".txt"))
	assert.Equal(t, "report.txt", FileName("  ", ".txt"))
}

func TestLocalSink_Publish(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink := NewLocalSink(dir)

	location, err := sink.Publish(context.Background(), "Asha_Report.txt", "text/plain", []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Asha_Report.txt"), location)
	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestS3Sink_Publish(t *testing.T) {
	client := new(MockPutObject)
	var captured *s3.PutObjectInput
	client.On("PutObject", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*s3.PutObjectInput)
		}).
		Return(&s3.PutObjectOutput{}, nil)

	sink, err := NewS3Sink(client, "reports-bucket", "reports")
	require.NoError(t, err)

	location, err := sink.Publish(context.Background(), "Asha_Report.txt", "text/plain; charset=utf-8", []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, "s3://reports-bucket/reports/Asha_Report.txt", location)
	require.NotNil(t, captured)
	assert.Equal(t, "reports-bucket", *captured.Bucket)
	assert.Equal(t, "reports/Asha_Report.txt", *captured.Key)
	assert.Equal(t, "text/plain; charset=utf-8", *captured.ContentType)
	body, err := io.ReadAll(captured.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	client.AssertExpectations(t)
}

func TestS3Sink_PublishError(t *testing.T) {
	client := new(MockPutObject)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	sink, err := NewS3Sink(client, "reports-bucket", "")
	require.NoError(t, err)

	_, err = sink.Publish(context.Background(), "x.txt", "text/plain", nil)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestNewS3Sink_Validation(t *testing.T) {
	_, err := NewS3Sink(nil, "bucket", "")
	assert.Error(t, err)

	_, err = NewS3Sink(new(MockPutObject), "", "")
	assert.Error(t, err)
}
