package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Client wraps the OpenWeather current-conditions API.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a weather client from the OPENWEATHER_API_KEY env var.
// Returns nil if the key is not set (graceful degradation).
func NewClient() *Client {
	key := os.Getenv("OPENWEATHER_API_KEY")
	if key == "" {
		return nil
	}
	return &Client{
		apiKey: key,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64  `json:"speed"`
		Gust  float64  `json:"gust"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Visibility int `json:"visibility"`
	Timezone   int `json:"timezone"` // shift from UTC in seconds
}

// Conditions is the flattened view served to clients.
type Conditions struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Temp          float64 `json:"temp"`
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      int     `json:"humidity"`
	Pressure      int     `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	WindGust      float64 `json:"wind_gust,omitempty"`
	WindDirection string  `json:"wind_direction,omitempty"`
	Visibility    int     `json:"visibility"`
	Clouds        int     `json:"clouds"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon,omitempty"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
}

// Current fetches metric current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (*Conditions, error) {
	u := fmt.Sprintf("https://api.openweathermap.org/data/2.5/weather?q=%s&units=metric&appid=%s",
		url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned HTTP %d", resp.StatusCode)
	}

	var cur currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cur); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	loc := time.FixedZone("local", cur.Timezone)
	cond := &Conditions{
		City:       cur.Name,
		Country:    cur.Sys.Country,
		Temp:       cur.Main.Temp,
		TempMin:    cur.Main.TempMin,
		TempMax:    cur.Main.TempMax,
		FeelsLike:  cur.Main.FeelsLike,
		Humidity:   cur.Main.Humidity,
		Pressure:   cur.Main.Pressure,
		WindSpeed:  cur.Wind.Speed,
		WindGust:   cur.Wind.Gust,
		Visibility: cur.Visibility,
		Clouds:     cur.Clouds.All,
		Sunrise:    time.Unix(cur.Sys.Sunrise, 0).In(loc).Format("15:04"),
		Sunset:     time.Unix(cur.Sys.Sunset, 0).In(loc).Format("15:04"),
	}
	if cur.Wind.Deg != nil {
		cond.WindDirection = windDirection(*cur.Wind.Deg)
	}
	if len(cur.Weather) > 0 {
		cond.Description = cur.Weather[0].Description
		cond.Icon = cur.Weather[0].Icon
	}

	return cond, nil
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// windDirection maps a bearing in degrees onto the 16-point compass rose.
func windDirection(deg float64) string {
	idx := int(math.Round(math.Mod(deg, 360)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}
