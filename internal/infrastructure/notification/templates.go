// File: internal/infrastructure/notification/templates.go
package notification

const baseStyle = `
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            margin-bottom: 20px;
        }
        .content {
            background-color: #f9f9f9;
            padding: 20px;
            border-radius: 5px;
        }
        .code {
            display: inline-block;
            font-size: 32px;
            font-weight: bold;
            letter-spacing: 8px;
            background-color: #eef3f8;
            padding: 10px 20px;
            border-radius: 5px;
            margin: 20px 0;
        }
        .button {
            display: inline-block;
            background-color: #2563eb;
            color: white;
            text-decoration: none;
            padding: 10px 20px;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            margin-top: 20px;
            font-size: 12px;
            color: #777;
            text-align: center;
        }
    </style>
`

const verificationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verify your email address</title>` + baseStyle + `
</head>
<body>
    <div class="header">
        <h1>Verify your email address</h1>
    </div>
    <div class="content">
        <p>Hello!</p>
        <p>Use the code below to confirm your email address:</p>
        <p style="text-align: center;">
            <span class="code">{{.Code}}</span>
        </p>
        <p>The code expires in {{.TTLMinutes}} minutes.</p>
        <p>If you did not create an account, you can safely ignore this email.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; {{.Year}} CoinCash. All rights reserved.</p>
    </div>
</body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset your password</title>` + baseStyle + `
</head>
<body>
    <div class="header">
        <h1>Reset your password</h1>
    </div>
    <div class="content">
        <p>Hello!</p>
        <p>We received a request to reset the password for your account. If you did not request a reset, you can safely ignore this email.</p>
        <p style="text-align: center;">
            <a href="{{.ResetLink}}" class="button">Reset password</a>
        </p>
        <p>The link expires in 15 minutes and can be used once.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; {{.Year}} CoinCash. All rights reserved.</p>
    </div>
</body>
</html>
`

const passwordResetConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your password has been changed</title>` + baseStyle + `
</head>
<body>
    <div class="header">
        <h1>Your password has been changed</h1>
    </div>
    <div class="content">
        <p>Hello!</p>
        <p>The password for your account was just changed.</p>
        <p>If this was not you, contact support immediately and request a new password reset.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; {{.Year}} CoinCash. All rights reserved.</p>
    </div>
</body>
</html>
`

const documentApprovalTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your documents have been approved</title>` + baseStyle + `
</head>
<body>
    <div class="header">
        <h1>Documents approved</h1>
    </div>
    <div class="content">
        <p>Hello, {{.Name}}!</p>
        <p>Your identity documents have been reviewed and approved. Your account is now fully verified.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; {{.Year}} CoinCash. All rights reserved.</p>
    </div>
</body>
</html>
`

const documentDenialTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your documents could not be verified</title>` + baseStyle + `
</head>
<body>
    <div class="header">
        <h1>Documents rejected</h1>
    </div>
    <div class="content">
        <p>Hello, {{.Name}}!</p>
        <p>Unfortunately we could not verify the identity documents you submitted.</p>
        <p>Please sign in and submit new photos. Make sure they are sharp, well lit and show the whole document.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; {{.Year}} CoinCash. All rights reserved.</p>
    </div>
</body>
</html>
`
