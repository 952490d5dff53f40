package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// Receipt inbox watcher: scans a directory of receipt images and uploads each
// one to the betrack API, which runs OCR and stores the draft. Processed files
// move to a sibling processed/ directory so a restart never re-uploads them.
// The server dedupes on (owner, file name) anyway, so a crash between upload
// and move is harmless.

var verbose bool

var extMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type apiClient struct {
	base  string
	http  *http.Client
	token string
	mu    sync.Mutex
}

func newAPIClient(base string) *apiClient {
	return &apiClient{base: strings.TrimRight(base, "/"), http: &http.Client{Timeout: 60 * time.Second}}
}

// login exchanges WATCHER_USERNAME / WATCHER_PASSWORD for an access token.
func (a *apiClient) login() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	username, password := os.Getenv("WATCHER_USERNAME"), os.Getenv("WATCHER_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("WATCHER_USERNAME and WATCHER_PASSWORD must be set")
	}
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := a.http.Post(a.base+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed: status=%d body=%s", resp.StatusCode, b)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	a.token = out.Token
	return nil
}

// uploadReceipt posts one image as multipart form data. On 401 it re-logs-in
// once and retries, since access tokens are short-lived.
func (a *apiClient) uploadReceipt(path string) (map[string]any, error) {
	for attempt := 0; attempt < 2; attempt++ {
		resp, err := a.doUpload(path)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			if err := a.login(); err != nil {
				return nil, err
			}
			continue
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("upload status=%d body=%s", resp.StatusCode, b)
		}
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("upload failed after retry")
}

func (a *apiClient) doUpload(path string) (*http.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, a.base+"/receipts", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	a.mu.Lock()
	req.Header.Set("Authorization", "Bearer "+a.token)
	a.mu.Unlock()
	return a.http.Do(req)
}

func main() {
	dirFlag := flag.String("dir", envOr("RECEIPT_INBOX", "receipts/inbox"), "directory to scan for receipt images")
	apiFlag := flag.String("api", envOr("API_BASE", "http://localhost:8082"), "betrack API base URL")
	dryRun := flag.Bool("dry-run", false, "List candidate files without uploading")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	files := listImageFiles(*dirFlag)
	if *dryRun {
		log.Printf("Dry-run: %d candidate files in %s", len(files), *dirFlag)
		for _, f := range files {
			log.Printf("  %s (%s)", f, mimeFromExt(f))
		}
		return
	}

	api := newAPIClient(*apiFlag)
	if err := api.login(); err != nil {
		log.Fatalf("login: %v", err)
	}

	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))
	runWorkerPool(*dirFlag, api, files, effectiveWorkers(*workers))

	if *watch {
		if err := watchDirectory(*dirFlag, api, effectiveWorkers(*workers)); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	_, ok := extMime[strings.ToLower(filepath.Ext(name))]
	return ok
}

func mimeFromExt(name string) string {
	return extMime[strings.ToLower(filepath.Ext(name))]
}

func watchDirectory(dir string, api *apiClient, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// debounce so half-written files settle before upload
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go runWorkerPool(dir, api, nil, workers, fileCh)
	select {}
}

// runWorkerPool fans the file names out over a fixed pool. With no extra
// channel it drains the initial list and returns; in watch mode it keeps
// relaying from the event channel.
func runWorkerPool(dir string, api *apiClient, initial []string, workers int, extraCh ...<-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(dir, name, api)
			}
		}()
	}
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		for _, ch := range extraCh {
			go func(c <-chan string) {
				for n := range c {
					fileCh <- n
				}
			}(ch)
		}
		if len(extraCh) == 0 {
			close(fileCh)
		}
	}()
	if len(extraCh) == 0 {
		wg.Wait()
	}
}

func processSingleFile(dir, name string, api *apiClient) {
	path := filepath.Join(dir, name)
	if err := shrinkForUpload(path); err != nil {
		log.Printf("WARN shrink %s: %v", name, err)
	}
	out, err := api.uploadReceipt(path)
	if err != nil {
		log.Printf("ERROR upload %s: %v", name, err)
		return
	}
	if failed, _ := out["failed"].(bool); failed {
		log.Printf("SCAN failed file=%s reason=%v", name, out["error"])
	} else {
		log.Printf("RECEIPT file=%s amount=%v suggestion=%v", name, out["total_amount"], out["category_suggestion"])
	}
	if err := moveToProcessed(path, name); err != nil {
		log.Printf("WARN failed to move processed file %s: %v", name, err)
	} else {
		logV("moved processed %s", name)
	}
}

// shrinkForUpload downscales images over the server's 5MB cap in place.
// Size roughly scales with pixel area, so the scale factor is sqrt-based.
func shrinkForUpload(path string) error {
	const maxBytes = 5_000_000
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.Size() <= maxBytes {
		return nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	scale := math.Sqrt(float64(maxBytes) / float64(fi.Size()))
	if scale > 0.95 {
		scale = 0.95
	}
	if scale < 0.1 {
		scale = 0.1
	}
	w := int(math.Max(1, math.Round(float64(img.Bounds().Dx())*scale)))
	img = imaging.Resize(img, w, 0, imaging.Lanczos)
	return imaging.Save(img, path)
}

// moveToProcessed moves an uploaded file into <dir>/../processed/<name>,
// trying an atomic rename first and falling back to copy+remove across
// filesystems.
func moveToProcessed(srcFullPath, name string) error {
	processedDir := filepath.Join(filepath.Dir(filepath.Dir(srcFullPath)), "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(processedDir, name)
	if err := os.Rename(srcFullPath, dst); err == nil {
		return nil
	}
	return copyRemove(srcFullPath, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	_ = out.Close()
	return os.Remove(src)
}
