package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
	"github.com/accountable-india/civicrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// stubGenerator returns a fixed response or error and records the last
// request it saw.
type stubGenerator struct {
	resp *genai.GenerateContentResponse
	err  error

	lastModel  string
	lastConfig *genai.GenerateContentConfig
}

func (s *stubGenerator) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.lastModel = model
	s.lastConfig = config
	return s.resp, s.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func groundedResponse(text, uri, title string) *genai.GenerateContentResponse {
	resp := textResponse(text)
	resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: uri, Title: title}},
			{Web: &genai.GroundingChunkWeb{URI: "", Title: "dropped"}},
			{},
		},
	}
	return resp
}

func TestClient_Insights(t *testing.T) {
	Convey("Given a collaborator that answers with valid JSON", t, func() {
		gen := &stubGenerator{resp: textResponse(`[{"topic":"Local Governance","summary":"Ward meetings resume this month."}]`)}
		client := ai.NewFromGenerator(gen)

		Convey("When requesting insights", func() {
			insights, degraded := client.Insights(context.Background(), "Asha")

			Convey("Then the parsed insights are returned undegraded", func() {
				So(degraded, ShouldBeFalse)
				So(len(insights), ShouldEqual, 1)
				So(insights[0].Topic, ShouldEqual, "Local Governance")
			})
		})
	})

	Convey("Given a collaborator that fails", t, func() {
		gen := &stubGenerator{err: errors.New("quota exhausted")}
		client := ai.NewFromGenerator(gen)

		Convey("When requesting insights", func() {
			insights, degraded := client.Insights(context.Background(), "Asha")

			Convey("Then the canned set is served and tagged degraded", func() {
				So(degraded, ShouldBeTrue)
				So(len(insights), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a collaborator that answers garbage", t, func() {
		gen := &stubGenerator{resp: textResponse("not json at all")}
		client := ai.NewFromGenerator(gen)

		Convey("When requesting insights", func() {
			_, degraded := client.Insights(context.Background(), "Asha")

			Convey("Then the result is degraded rather than an error", func() {
				So(degraded, ShouldBeTrue)
			})
		})
	})
}

func TestClient_DiscoverLeader(t *testing.T) {
	Convey("Given a collaborator that returns a profile", t, func() {
		gen := &stubGenerator{resp: textResponse(`{"name":"Sunita Devi","role":"MP","party":"TMC","constituency":"Kolkata South","state":"West Bengal","attendance":83}`)}
		client := ai.NewFromGenerator(gen, ai.WithModel("custom-model"))

		Convey("When discovering a leader", func() {
			profile, err := client.DiscoverLeader(context.Background(), "Sunita Devi")

			Convey("Then the profile is decoded", func() {
				So(err, ShouldBeNil)
				So(profile.Name, ShouldEqual, "Sunita Devi")
				So(profile.Attendance, ShouldEqual, 83)
			})

			Convey("And the configured model and schema were used", func() {
				So(gen.lastModel, ShouldEqual, "custom-model")
				So(gen.lastConfig.ResponseSchema, ShouldNotBeNil)
				So(gen.lastConfig.Tools, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a collaborator that fails", t, func() {
		gen := &stubGenerator{err: errors.New("network down")}
		client := ai.NewFromGenerator(gen)

		Convey("When discovering a leader", func() {
			_, err := client.DiscoverLeader(context.Background(), "Sunita Devi")

			Convey("Then the error surfaces for the worker to handle", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "network down")
			})
		})
	})
}

func TestClient_CompareLeaders(t *testing.T) {
	Convey("Given a grounded comparison response", t, func() {
		gen := &stubGenerator{resp: groundedResponse("A leads on attendance.", "https://example.org/a", "Attendance records")}
		client := ai.NewFromGenerator(gen)

		Convey("When comparing two leaders", func() {
			answer := client.CompareLeaders(context.Background(), "A", "B")

			Convey("Then text and usable citations come back", func() {
				So(answer.Degraded, ShouldBeFalse)
				So(answer.Text, ShouldEqual, "A leads on attendance.")
				So(len(answer.Sources), ShouldEqual, 1)
				So(answer.Sources[0].URI, ShouldEqual, "https://example.org/a")
			})
		})
	})

	Convey("Given a failing collaborator", t, func() {
		gen := &stubGenerator{err: errors.New("timeout")}
		client := ai.NewFromGenerator(gen, ai.WithTimeout(50*time.Millisecond))

		Convey("When comparing", func() {
			answer := client.CompareLeaders(context.Background(), "A", "B")

			Convey("Then a tagged degraded answer is returned, never an error", func() {
				So(answer.Degraded, ShouldBeTrue)
				So(answer.Text, ShouldNotBeEmpty)
				So(answer.Sources, ShouldBeEmpty)
			})
		})
	})
}

func TestClient_VerifyPromises(t *testing.T) {
	Convey("Given a collaborator that returns promises", t, func() {
		gen := &stubGenerator{resp: textResponse(`[{"title":"River cleanup phase two","description":"d","authority":"Environment Ministry","party":"X"}]`)}
		client := ai.NewFromGenerator(gen)

		Convey("When verifying promises", func() {
			promises, err := client.VerifyPromises(context.Background(), "")

			Convey("Then the list is decoded", func() {
				So(err, ShouldBeNil)
				So(len(promises), ShouldEqual, 1)
				So(promises[0].Title, ShouldEqual, "River cleanup phase two")
			})
		})
	})

	Convey("Given an empty model response", t, func() {
		gen := &stubGenerator{resp: textResponse("")}
		client := ai.NewFromGenerator(gen)

		Convey("When verifying promises", func() {
			_, err := client.VerifyPromises(context.Background(), "water")

			Convey("Then the empty response is an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
