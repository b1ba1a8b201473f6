package tiles

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// ReadGeoJSON reads a FeatureCollection from a blob URL (file://, gs://,
// s3://) or a plain local path.
func ReadGeoJSON(ctx context.Context, source string) (*geojson.FeatureCollection, error) {
	bucketURL, key, err := splitBlobURL(source)
	if err != nil {
		return nil, err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	defer bucket.Close()

	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", source)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", source)
	}

	return fc, nil
}

func splitBlobURL(source string) (bucketURL, key string, err error) {
	if source == "" {
		return "", "", errors.New("empty blob source")
	}

	if !strings.Contains(source, "://") {
		abs, err := filepath.Abs(source)
		if err != nil {
			return "", "", errors.WithStack(err)
		}

		return "file://" + filepath.Dir(abs), filepath.Base(abs), nil
	}

	if path, ok := strings.CutPrefix(source, "file://"); ok {
		return "file://" + filepath.Dir(path), filepath.Base(path), nil
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return "", "", errors.WithStack(err)
	}
	key = strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", "", errors.Errorf("blob source %s has no object key", source)
	}

	bucketURL = parsed.Scheme + "://" + parsed.Host
	if parsed.RawQuery != "" {
		bucketURL += "?" + parsed.RawQuery
	}

	return bucketURL, key, nil
}

// blobSource serves a static GeoJSON file, read once.
type blobSource struct {
	source string

	mu sync.Mutex
	fc *geojson.FeatureCollection
}

func (s *blobSource) Read(ctx context.Context) (*geojson.FeatureCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fc != nil {
		return s.fc, nil
	}

	fc, err := ReadGeoJSON(ctx, s.source)
	if err != nil {
		return nil, err
	}
	s.fc = fc

	return fc, nil
}
