package extract

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// asarStrategy is the built-in resource fallback: a native decoder for the
// Electron ASAR format, used when neither the asar CLI nor npx is installed.
//
// An ASAR file starts with a 16-byte pickle preamble of four little-endian
// uint32 values; the fourth is the byte length of a JSON directory header
// that follows. File payloads are concatenated after the header, addressed
// by decimal-string offsets relative to the first payload byte.
type asarStrategy struct{}

func (a *asarStrategy) Name() string { return "asar (built-in)" }

// asarNode is one entry of the JSON directory header. A node is either a
// directory (Files set) or a file (Offset/Size set). Unpacked entries live
// outside the archive in an .asar.unpacked tree and carry no payload here.
type asarNode struct {
	Files    map[string]*asarNode `json:"files"`
	Offset   string               `json:"offset"`
	Size     int64                `json:"size"`
	Unpacked bool                 `json:"unpacked"`
	Link     string               `json:"link"`
}

func (a *asarStrategy) Extract(ctx context.Context, inputPath, outputDir string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open asar: %w", err)
	}
	defer f.Close()

	root, dataStart, err := readAsarHeader(f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	return writeAsarTree(ctx, f, root, dataStart, outputDir, "")
}

// readAsarHeader parses the pickle preamble and JSON directory.
// It returns the root node and the absolute offset of the first payload byte.
func readAsarHeader(r io.ReaderAt) (*asarNode, int64, error) {
	var preamble [16]byte
	if _, err := r.ReadAt(preamble[:], 0); err != nil {
		return nil, 0, fmt.Errorf("read asar preamble: %w", err)
	}

	payloadSize := binary.LittleEndian.Uint32(preamble[0:4])
	pickleSize := binary.LittleEndian.Uint32(preamble[4:8])
	headerLen := binary.LittleEndian.Uint32(preamble[12:16])

	// The first word of a pickle preamble is always 4 (the size of the
	// length word itself); anything else means this is not an ASAR file.
	if payloadSize != 4 || headerLen == 0 || uint64(headerLen)+8 > uint64(pickleSize)+4 {
		return nil, 0, fmt.Errorf("not an asar archive: bad pickle preamble")
	}

	headerJSON := make([]byte, headerLen)
	if _, err := r.ReadAt(headerJSON, 16); err != nil {
		return nil, 0, fmt.Errorf("read asar header: %w", err)
	}

	var root asarNode
	if err := json.Unmarshal(headerJSON, &root); err != nil {
		return nil, 0, fmt.Errorf("parse asar header: %w", err)
	}
	if root.Files == nil {
		return nil, 0, fmt.Errorf("asar header has no file table")
	}

	// Payload data begins right after the pickle (preamble word + pickle body).
	dataStart := int64(8) + int64(pickleSize)
	return &root, dataStart, nil
}

// writeAsarTree materializes a directory node under outputDir.
func writeAsarTree(ctx context.Context, r io.ReaderAt, node *asarNode, dataStart int64, outputDir, rel string) error {
	for name, child := range node.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		childRel := filepath.Join(rel, name)
		target, err := safeJoin(outputDir, childRel)
		if err != nil {
			return err
		}

		switch {
		case child.Files != nil:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			if err := writeAsarTree(ctx, r, child, dataStart, outputDir, childRel); err != nil {
				return err
			}

		case child.Link != "":
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			if err := os.Symlink(child.Link, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		case child.Unpacked:
			// Payload lives in the sibling .asar.unpacked tree, which the
			// installer chain already extracted. Nothing to write here.
			continue

		default:
			if err := writeAsarFile(r, child, dataStart, target, childRel); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAsarFile(r io.ReaderAt, node *asarNode, dataStart int64, target, rel string) error {
	offset, err := strconv.ParseInt(node.Offset, 10, 64)
	if err != nil {
		return fmt.Errorf("bad offset for %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	src := io.NewSectionReader(r, dataStart+offset, node.Size)
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}
	return dst.Close()
}
