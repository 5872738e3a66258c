package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/vdom"
)

// memS3 is an in-memory S3API.
type memS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func newMemS3() *memS3 {
	return &memS3{objects: make(map[string][]byte)}
}

func (m *memS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	m.puts++
	return &s3.PutObjectOutput{}, nil
}

func (m *memS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Prefix)
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(strings.TrimPrefix(k, aws.ToString(in.Bucket)+"/"))})
	}
	return out, nil
}

func TestSnapshotName(t *testing.T) {
	a := SnapshotName("", []byte(`{"id":1}`))
	if a != SnapshotName("", []byte(`{"id":1}`)) {
		t.Error("SnapshotName is not deterministic")
	}
	if a == SnapshotName("", []byte(`{"id":2}`)) {
		t.Error("SnapshotName collided on different data")
	}
	if !strings.HasPrefix(SnapshotName("todo", nil), "todo-") {
		t.Error("prefix not applied")
	}
	if !ValidSnapshotName(a) {
		t.Errorf("generated name %q is not valid", a)
	}
}

func TestValidSnapshotName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"abc.json", true},
		{"todo-0123.json", true},
		{"", false},
		{"../etc/passwd", false},
		{"a/b.json", false},
		{".hidden.json", false},
		{"a..b.json", false},
	}
	for _, tt := range tests {
		if got := ValidSnapshotName(tt.name); got != tt.want {
			t.Errorf("ValidSnapshotName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func testStore(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("fresh store lists %v", names)
	}

	if err := store.Save(ctx, "b.json", []byte("two")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "a.json", []byte("one")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := store.Load(ctx, "a.json")
	if err != nil || string(data) != "one" {
		t.Fatalf("Load = %q, %v", data, err)
	}
	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]string{"a.json", "b.json"}, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.Load(ctx, "missing.json"); !stderrors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load(missing) = %v, want ErrSnapshotNotFound", err)
	}
	if err := store.Save(ctx, "../escape.json", nil); errors.Code(err) != "VC030" {
		t.Errorf("Save(bad name) = %v, want VC030", err)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	testStore(t, store)
}

func TestS3Store(t *testing.T) {
	client := newMemS3()
	store := NewS3Store(client, "bucket", "snaps/")
	testStore(t, store)

	if _, ok := client.objects["bucket/snaps/a.json"]; !ok {
		t.Error("object not written under the prefix")
	}
}

func TestSnapshotEndpoints(t *testing.T) {
	store := NewS3Store(newMemS3(), "bucket", "")
	f := newFixture(t, WithStore(store), WithName("counter"))

	resp, err := http.Post(f.srv.URL+"/snapshots", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /snapshots: %v", err)
	}
	var saved map[string]string
	json.NewDecoder(resp.Body).Decode(&saved)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	name := saved["name"]
	if !strings.HasPrefix(name, "counter-") {
		t.Errorf("name = %q", name)
	}

	resp, err = http.Get(f.srv.URL + "/snapshots/" + name)
	if err != nil {
		t.Fatalf("GET snapshot: %v", err)
	}
	var tree vdom.SnapshotNode
	json.NewDecoder(resp.Body).Decode(&tree)
	resp.Body.Close()
	if diff := cmp.Diff(f.host.Tree(), tree); diff != "" {
		t.Errorf("stored tree mismatch (-want +got):\n%s", diff)
	}

	resp, err = http.Get(f.srv.URL + "/snapshots/")
	if err != nil {
		t.Fatalf("GET /snapshots: %v", err)
	}
	var list map[string][]string
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if diff := cmp.Diff([]string{name}, list["snapshots"]); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	resp, err = http.Get(f.srv.URL + "/snapshots/nothing.json")
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing snapshot status = %d, want 404", resp.StatusCode)
	}
}

func TestSnapshotsWithoutStore(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Post(f.srv.URL+"/snapshots", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /snapshots: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
