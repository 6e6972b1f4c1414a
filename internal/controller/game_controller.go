package controller

import (
	"errors"
	"time"

	"github.com/akibahmed229/chess-engine/internal/service"
	"github.com/gofiber/fiber/v2"
)

// matchWaitTimeout bounds the matchmaking long poll; clients re-poll after
// an empty response.
const matchWaitTimeout = 30 * time.Second

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// CreateGame registers a new game. An optional JSON body with a "position"
// field starts the game from that FEN instead of the standard setup.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var body struct {
		Position string `json:"position"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	var (
		gameID string
		err    error
	)
	if body.Position != "" {
		gameID, err = gc.gameService.CreateGameFromPosition(body.Position)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	} else {
		gameID, err = gc.gameService.CreateGame()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return c.Status(joinStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func joinStatus(err error) int {
	switch err.Error() {
	case "game not found":
		return fiber.StatusNotFound
	case "game is full":
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if err.Error() == "game not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join matchmaking",
		})
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// WaitForMatch long-polls for the match-found event of a queued player.
// Times out with 408 so the client knows to poll again; queue membership
// survives the timeout.
func (gc *GameController) WaitForMatch(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	if err := gc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to wait for match",
		})
	}
	defer gc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	select {
	case payload, ok := <-ch:
		if !ok {
			// A newer wait request replaced this one.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "superseded by a newer wait request",
			})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(payload)
	case <-time.After(matchWaitTimeout):
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
			"status": "no match yet",
		})
	}
}

// ListArchive returns recently finished games from the archive database.
func (gc *GameController) ListArchive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	recs, err := gc.gameService.RecentGames(limit)
	if err != nil {
		if errors.Is(err, service.ErrNoArchive) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list archived games",
		})
	}

	return c.JSON(recs)
}
