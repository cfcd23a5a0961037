// Package main provides a command-line client for the player server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
)

var (
	app    = kingpin.New("playerctl", "eSpazza player control client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	user   = app.Flag("user", "User ID sent as X-User-Id").String()

	statusCmd = app.Command("status", "Show the player state")

	playCmd   = app.Command("play", "Resume playback")
	pauseCmd  = app.Command("pause", "Pause playback")
	toggleCmd = app.Command("toggle", "Toggle play/pause")
	nextCmd   = app.Command("next", "Skip to the next track")
	prevCmd   = app.Command("prev", "Go to the previous track")

	seekCmd = app.Command("seek", "Seek within the current track")
	seekPos = seekCmd.Arg("seconds", "Position in seconds").Required().Float64()

	volumeCmd   = app.Command("volume", "Set the volume")
	volumeValue = volumeCmd.Arg("value", "Volume between 0 and 1").Required().Float64()

	muteCmd    = app.Command("mute", "Toggle mute")
	repeatCmd  = app.Command("repeat", "Cycle repeat mode")
	shuffleCmd = app.Command("shuffle", "Toggle shuffle")

	playlistsCmd = app.Command("playlists", "List playlists")

	playPlaylistCmd = app.Command("play-playlist", "Play a playlist")
	playPlaylistID  = playPlaylistCmd.Arg("id", "Playlist ID").Required().String()

	queueAddCmd    = app.Command("queue-add", "Append a track to the queue")
	queueAddID     = queueAddCmd.Arg("id", "Track ID").Required().String()
	queueAddURL    = queueAddCmd.Arg("url", "Audio URL").Required().String()
	queueAddTitle  = queueAddCmd.Flag("title", "Track title").String()
	queueAddArtist = queueAddCmd.Flag("artist", "Artist name").String()

	clearQueueCmd = app.Command("clear-queue", "Clear the queue")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case statusCmd.FullCommand():
		printStatus(call(http.MethodGet, "/player/", nil))
	case playCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/play", nil))
	case pauseCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/pause", nil))
	case toggleCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/toggle", nil))
	case nextCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/next", nil))
	case prevCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/previous", nil))
	case seekCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/seek", map[string]any{"position": *seekPos}))
	case volumeCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/volume", map[string]any{"volume": *volumeValue}))
	case muteCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/mute", nil))
	case repeatCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/repeat", nil))
	case shuffleCmd.FullCommand():
		printStatus(call(http.MethodPost, "/player/shuffle", nil))
	case playlistsCmd.FullCommand():
		printPlaylists(call(http.MethodGet, "/playlists", nil))
	case playPlaylistCmd.FullCommand():
		printStatus(call(http.MethodPost, "/playlists/"+*playPlaylistID+"/play", nil))
	case queueAddCmd.FullCommand():
		printStatus(call(http.MethodPost, "/queue", map[string]any{
			"id":     *queueAddID,
			"url":    *queueAddURL,
			"title":  *queueAddTitle,
			"artist": *queueAddArtist,
		}))
	case clearQueueCmd.FullCommand():
		printStatus(call(http.MethodDelete, "/queue", nil))
	}
}

// call performs the request and exits on transport or server errors.
func call(method, path string, body any) []byte {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	req, err := http.NewRequest(method, *server+path, &buf)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if *user != "" {
		req.Header.Set("X-User-Id", *user)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			fmt.Printf("Error: %s\n", e.Error)
		} else {
			fmt.Printf("Error: %s\n", resp.Status)
		}
		os.Exit(1)
	}
	return data
}

type trackView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type stateView struct {
	CurrentTrack *trackView  `json:"current_track"`
	Queue        []trackView `json:"queue"`
	IsPlaying    bool        `json:"is_playing"`
	Volume       float64     `json:"volume"`
	Muted        bool        `json:"muted"`
	CurrentTime  float64     `json:"current_time"`
	Duration     float64     `json:"duration"`
	RepeatMode   string      `json:"repeat_mode"`
	Shuffle      bool        `json:"shuffle"`
}

func printStatus(data []byte) {
	if len(data) == 0 {
		fmt.Println("OK")
		return
	}

	var state stateView
	if err := json.Unmarshal(data, &state); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	transport := "⏸  Paused"
	if state.IsPlaying {
		transport = "▶️  Playing"
	}
	fmt.Println(transport)

	if state.CurrentTrack != nil {
		fmt.Printf("  %s - %s (%s / %s)\n",
			state.CurrentTrack.Artist, state.CurrentTrack.Title,
			formatSeconds(state.CurrentTime), formatSeconds(state.Duration))
	} else {
		fmt.Println("  (no track)")
	}

	volume := strconv.FormatFloat(state.Volume*100, 'f', 0, 64) + "%"
	if state.Muted {
		volume += " (muted)"
	}
	fmt.Printf("  volume: %s  repeat: %s  shuffle: %v  queue: %d tracks\n",
		volume, state.RepeatMode, state.Shuffle, len(state.Queue))
}

type playlistView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	IsPublic bool        `json:"is_public"`
	Tracks   []trackView `json:"tracks"`
}

func printPlaylists(data []byte) {
	var body struct {
		Playlists     []playlistView `json:"playlists"`
		UserPlaylists []string       `json:"user_playlists"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	saved := make(map[string]bool, len(body.UserPlaylists))
	for _, id := range body.UserPlaylists {
		saved[id] = true
	}

	for _, p := range body.Playlists {
		marker := " "
		if saved[p.ID] {
			marker = "★"
		}
		visibility := "private"
		if p.IsPublic {
			visibility = "public"
		}
		fmt.Printf("%s %s  %s (%s, %d tracks)\n", marker, p.ID, p.Name, visibility, len(p.Tracks))
	}
}

func formatSeconds(s float64) string {
	total := int(s)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
