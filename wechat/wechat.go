// Package wechat implements [notionpub.MediaUploader] and
// [notionpub.DraftCreator] for the WeChat Official Account API.
package wechat

import "fmt"

const (
	defaultBaseURL = "https://api.weixin.qq.com"
	tokenPath      = "/cgi-bin/token"
	uploadImgPath  = "/cgi-bin/media/uploadimg"
	materialPath   = "/cgi-bin/material/add_material"
	draftPath      = "/cgi-bin/draft/add"
	mediaField     = "media"
	defaultAuthor  = "Author"
)

// apiStatus is embedded in every response. The API reports failures with
// HTTP 200 and a non-zero errcode.
type apiStatus struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (s apiStatus) err() error {
	if s.ErrCode == 0 {
		return nil
	}
	return &APIError{Code: s.ErrCode, Message: s.ErrMsg}
}

// APIError is a failure reported by the API through errcode.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("errcode %d: %s", e.Code, e.Message)
}

type apiTokenResponse struct {
	apiStatus
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type apiUploadImageResponse struct {
	apiStatus
	URL string `json:"url"`
}

type apiMaterialResponse struct {
	apiStatus
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
}

type apiArticle struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Digest          string `json:"digest"`
	Content         string `json:"content"`
	ThumbMediaID    string `json:"thumb_media_id,omitempty"`
	NeedOpenComment int    `json:"need_open_comment"`
}

type apiDraftRequest struct {
	Articles []apiArticle `json:"articles"`
}

type apiDraftResponse struct {
	apiStatus
	MediaID string `json:"media_id"`
}
