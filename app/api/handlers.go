package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/icon-lists/app/artifact"
	"github.com/lysyi3m/icon-lists/app/cfg"
	"github.com/lysyi3m/icon-lists/app/database"
)

var allViews = []artifact.View{artifact.ViewFull, artifact.ViewAlphabetical, artifact.ViewPopularity}

// NewHandler serves the artifacts of the given outputs from outputDir. A nil
// runRepo disables run statistics.
func NewHandler(outputDir string, outputs []string, runRepo database.RunRepository) *Handler {
	known := make(map[string]struct{}, len(outputs))
	for _, output := range outputs {
		known[output] = struct{}{}
	}

	return &Handler{
		outputDir: outputDir,
		outputs:   known,
		runRepo:   runRepo,
	}
}

func (h *Handler) GetSet(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.outputs[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown icon set"})
		return
	}

	view, ok := artifact.ParseView(c.Query("view"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown view", "views": allViews})
		return
	}

	path := artifact.Path(h.outputDir, name, view, true)
	c.Header("Vary", "Accept-Encoding")
	c.Header("X-Icon-Set", name)
	c.Header("X-Icon-View", string(view))

	if acceptsBrotli(c.GetHeader("Accept-Encoding")) {
		data, err := os.ReadFile(path + artifact.CompressedExt)
		if err == nil {
			c.Header("Content-Encoding", "br")
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("Artifact read error", "path", path+artifact.CompressedExt, "error", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artifact not generated"})
			return
		}
		slog.Error("Artifact read error", "path", path, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) ListSets(c *gin.Context) {
	sets := make([]setInfo, 0, len(h.outputs))

	for name := range h.outputs {
		info := setInfo{Name: name, Views: []string{}}
		for _, view := range allViews {
			if _, err := os.Stat(artifact.Path(h.outputDir, name, view, true)); err == nil {
				info.Views = append(info.Views, string(view))
			}
		}
		sets = append(sets, info)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Name < sets[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"sets":  sets,
		"total": len(sets),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
	}

	if h.runRepo != nil {
		if runCount, err := h.runRepo.GetRunCount(c.Request.Context()); err == nil {
			health["runs"] = runCount
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	if h.runRepo == nil {
		c.JSON(http.StatusOK, gin.H{"history": false, "runs": []runInfo{}})
		return
	}

	runs, err := h.runRepo.GetLatestRuns(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	infos := make([]runInfo, 0, len(runs))
	for _, run := range runs {
		outputs := run.Outputs
		if outputs == nil {
			outputs = []database.RunOutput{}
		}
		infos = append(infos, runInfo{
			Set:       run.Set,
			State:     run.State,
			Success:   run.Success,
			FailedAt:  run.FailedAt,
			Error:     run.Error,
			Warnings:  run.Warnings,
			StartedAt: run.StartedAt.In(time.Local).Format(time.RFC3339),
			Duration:  run.Duration.String(),
			Outputs:   outputs,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": true, "runs": infos})
}

// acceptsBrotli reports whether an Accept-Encoding header allows br.
func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "br") {
			continue
		}
		params = strings.TrimSpace(params)
		if q, ok := strings.CutPrefix(params, "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				return false
			}
		}
		return true
	}
	return false
}
