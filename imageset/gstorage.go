package imageset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

// MaybeOpenFromGoogleStorage opens a local file, or a Google Storage object
// if the path is a gs:// URL and a storage client has been provided.
func MaybeOpenFromGoogleStorage(filePath string, client *storage.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(filePath, "gs://") {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, pfx.Err(err)
		}

		return f, nil
	}

	if client == nil {
		return nil, fmt.Errorf("%s is a google storage path, but no storage client was provided", filePath)
	}

	bucketName, pathName, err := splitGoogleStoragePath(filePath)
	if err != nil {
		return nil, err
	}

	rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(context.Background())
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", filePath, err))
	}

	return rdr, nil
}

// listGoogleStorage lists the object names directly under a gs:// prefix.
// Objects nested more deeply (pseudo-subdirectories) are skipped, matching
// the local directory listing behavior.
func listGoogleStorage(dir string, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("%s is a google storage path, but no storage client was provided", dir)
	}

	bucketName, prefix, err := splitGoogleStoragePath(dir)
	if err != nil {
		return nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	names := make([]string, 0)

	it := client.Bucket(bucketName).Objects(context.Background(), &storage.Query{Prefix: prefix, Delimiter: "/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		// Delimiter entries ("subdirectories") have an empty Name
		if attrs.Name == "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		names = append(names, path.Base(attrs.Name))
	}

	return names, nil
}

func splitGoogleStoragePath(gsPath string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(gsPath, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return "", "", fmt.Errorf("tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}
